package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starfeed/reviews/internal/domain"
	pkgkafka "github.com/starfeed/reviews/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewSubmitted = "reviews.review.submitted"
	TopicReviewModerated = "reviews.review.moderated"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from this service.
const SourceReviewService = "review-service"

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ID             string `json:"id"`
	SupportRating  int    `json:"support_rating"`
	QualityRating  int    `json:"quality_rating"`
	FeaturesRating int    `json:"features_rating"`
	ValueRating    int    `json:"value_rating"`
	Status         string `json:"status"`
}

// ReviewModeratedData is the payload for a review.moderated event.
type ReviewModeratedData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ID:             review.ID,
		SupportRating:  review.SupportRating,
		QualityRating:  review.QualityRating,
		FeaturesRating: review.FeaturesRating,
		ValueRating:    review.ValueRating,
		Status:         review.Status,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.ID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
	)

	return nil
}

// PublishReviewModerated publishes a review.moderated event.
func (p *Producer) PublishReviewModerated(ctx context.Context, id, status string) error {
	data := ReviewModeratedData{
		ID:     id,
		Status: status,
	}

	event, err := pkgkafka.NewEvent(TopicReviewModerated, id, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.moderated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewModerated, event); err != nil {
		return fmt.Errorf("publish review.moderated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.moderated event",
		slog.String("review_id", id),
		slog.String("status", status),
	)

	return nil
}
