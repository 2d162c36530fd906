package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/starfeed/reviews/internal/domain"
	"github.com/starfeed/reviews/internal/repository"
)

// DB is the subset of pgxpool.Pool used by the repository. Both
// *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it, so tests can exercise
// the production constructor.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// defaultListLimit bounds unqualified listings, matching the API default.
const defaultListLimit = 100

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (
			id, support_rating, quality_rating, features_rating,
			value_rating, comment, created_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.SupportRating,
		review.QualityRating,
		review.FeaturesRating,
		review.ValueRating,
		review.Comment,
		review.Timestamp,
		review.Status,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// List returns reviews matching the given filter, newest first.
func (r *ReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		rows pgx.Rows
		err  error
	)

	if filter.Status != nil {
		query := `
			SELECT id, support_rating, quality_rating, features_rating,
			       value_rating, comment, created_at, status
			FROM reviews
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2`
		rows, err = r.db.Query(ctx, query, *filter.Status, limit)
	} else {
		query := `
			SELECT id, support_rating, quality_rating, features_rating,
			       value_rating, comment, created_at, status
			FROM reviews
			ORDER BY created_at DESC
			LIMIT $1`
		rows, err = r.db.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// UpdateStatus sets the moderation status of a review. It reports whether a
// matching row existed.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	query := `UPDATE reviews SET status = $1 WHERE id = $2`

	ct, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update review status: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// ListApprovedSince returns approved reviews with created_at >= since,
// newest first. A nil since returns every approved review.
func (r *ReviewRepository) ListApprovedSince(ctx context.Context, since *time.Time) ([]domain.Review, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if since != nil {
		query := `
			SELECT id, support_rating, quality_rating, features_rating,
			       value_rating, comment, created_at, status
			FROM reviews
			WHERE status = $1 AND created_at >= $2
			ORDER BY created_at DESC`
		rows, err = r.db.Query(ctx, query, domain.StatusApproved, *since)
	} else {
		query := `
			SELECT id, support_rating, quality_rating, features_rating,
			       value_rating, comment, created_at, status
			FROM reviews
			WHERE status = $1
			ORDER BY created_at DESC`
		rows, err = r.db.Query(ctx, query, domain.StatusApproved)
	}
	if err != nil {
		return nil, fmt.Errorf("list approved reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// collectReviews scans all rows into a non-nil slice.
func collectReviews(rows pgx.Rows) ([]domain.Review, error) {
	reviews := []domain.Review{}

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.SupportRating,
			&rev.QualityRating,
			&rev.FeaturesRating,
			&rev.ValueRating,
			&rev.Comment,
			&rev.Timestamp,
			&rev.Status,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
