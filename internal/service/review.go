package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starfeed/reviews/internal/domain"
	"github.com/starfeed/reviews/internal/event"
	"github.com/starfeed/reviews/internal/export"
	"github.com/starfeed/reviews/internal/repository"
	"github.com/starfeed/reviews/internal/stats"
	apperrors "github.com/starfeed/reviews/pkg/errors"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ReviewService implements the business logic for review collection,
// moderation, aggregation, and export.
type ReviewService struct {
	repo     repository.ReviewRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	SupportRating  int
	QualityRating  int
	FeaturesRating int
	ValueRating    int
	Comment        string
}

// Submit validates and stores a new review. Reviews always enter the system
// in pending status; the submitter cannot choose a status.
func (s *ReviewService) Submit(ctx context.Context, input *SubmitReviewInput) (*domain.Review, error) {
	for _, r := range []struct {
		name  string
		value int
	}{
		{"support_rating", input.SupportRating},
		{"quality_rating", input.QualityRating},
		{"features_rating", input.FeaturesRating},
		{"value_rating", input.ValueRating},
	} {
		if r.value < 1 || r.value > 5 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be between 1 and 5", r.name))
		}
	}

	review := &domain.Review{
		ID:             uuid.New().String(),
		SupportRating:  input.SupportRating,
		QualityRating:  input.QualityRating,
		FeaturesRating: input.FeaturesRating,
		ValueRating:    input.ValueRating,
		Comment:        input.Comment,
		Timestamp:      time.Now().UTC(),
		Status:         domain.StatusPending,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	reviewsSubmitted.Inc()

	if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
	)

	return review, nil
}

// List returns reviews, newest first, optionally filtered by moderation
// status. The limit is clamped to a sane range.
func (s *ReviewService) List(ctx context.Context, status *string, limit int) ([]domain.Review, error) {
	if status != nil && !domain.IsValidStatus(*status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s", *status, strings.Join(domain.ValidStatuses(), ", ")))
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	reviews, err := s.repo.List(ctx, repository.ReviewFilter{Status: status, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

// Moderate sets the moderation status of a review. Any status transition is
// allowed, including re-moderating an already moderated review.
func (s *ReviewService) Moderate(ctx context.Context, id, status string) error {
	if !domain.IsValidStatus(status) {
		return apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s", status, strings.Join(domain.ValidStatuses(), ", ")))
	}

	found, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("moderate review: %w", err)
	}
	if !found {
		return apperrors.NotFound("review", id)
	}

	reviewsModerated.WithLabelValues(status).Inc()

	if err := s.producer.PublishReviewModerated(ctx, id, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.moderated event",
			slog.String("review_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.String("review_id", id),
		slog.String("status", status),
	)

	return nil
}

// Stats computes all-time aggregate statistics over approved reviews. With no
// approved reviews it returns zeroed statistics rather than an error.
func (s *ReviewService) Stats(ctx context.Context) (stats.Stats, error) {
	reviews, err := s.repo.ListApprovedSince(ctx, nil)
	if err != nil {
		return stats.Stats{}, fmt.Errorf("load approved reviews for stats: %w", err)
	}

	return stats.Compute(reviews), nil
}

// WeeklyStats computes per-week statistics over approved reviews from the
// last four weeks, keyed by the Monday of each week.
func (s *ReviewService) WeeklyStats(ctx context.Context) (map[string]stats.Stats, error) {
	now := time.Now().UTC()
	since := now.Add(-stats.WeeklyWindow)

	reviews, err := s.repo.ListApprovedSince(ctx, &since)
	if err != nil {
		return nil, fmt.Errorf("load approved reviews for weekly stats: %w", err)
	}

	return stats.Weekly(reviews, now), nil
}

// MonthlyStats computes per-month statistics over approved reviews from the
// last 180 days, keyed by calendar month.
func (s *ReviewService) MonthlyStats(ctx context.Context) (map[string]stats.Stats, error) {
	now := time.Now().UTC()
	since := now.Add(-stats.MonthlyWindow)

	reviews, err := s.repo.ListApprovedSince(ctx, &since)
	if err != nil {
		return nil, fmt.Errorf("load approved reviews for monthly stats: %w", err)
	}

	return stats.Monthly(reviews, now), nil
}

// ExportCSV renders all approved reviews as a CSV document.
func (s *ReviewService) ExportCSV(ctx context.Context) (string, error) {
	reviews, err := s.repo.ListApprovedSince(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("load approved reviews for export: %w", err)
	}

	return export.CSV(reviews), nil
}
