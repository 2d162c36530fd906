package repository

import (
	"context"
	"time"

	"github.com/starfeed/reviews/internal/domain"
)

// ReviewFilter defines filter criteria for listing reviews.
type ReviewFilter struct {
	// Status restricts the listing to one moderation status when non-nil.
	Status *string

	// Limit caps the number of returned reviews. Zero or negative means
	// the default listing limit.
	Limit int
}

// ReviewRepository defines the interface for review persistence operations.
// The store is the sole owner of review state; aggregation and export are
// pure functions over snapshots it returns.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// List returns reviews matching the given filter, ordered by timestamp
	// descending.
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)

	// UpdateStatus sets the moderation status of the review with the given
	// id. It reports whether a matching record existed; an unknown id is
	// not an error.
	UpdateStatus(ctx context.Context, id, status string) (bool, error)

	// ListApprovedSince returns all approved reviews with a timestamp at or
	// after since, ordered by timestamp descending. A nil since returns
	// every approved review. This is the scan feeding stats and export.
	ListApprovedSince(ctx context.Context, since *time.Time) ([]domain.Review, error)
}
