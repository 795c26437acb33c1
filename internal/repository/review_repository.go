package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// GetAll retrieves all reviews, newest first.
func (r *reviewRepository) GetAll(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT id, rating, text, user_id, product_id, created_at
		FROM reviews
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Text, &rev.UserID, &rev.ProductID, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts a review and fills in the generated ID and timestamp.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	query := `
		INSERT INTO reviews (rating, text, user_id, product_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, review.Rating, review.Text, review.UserID, review.ProductID).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("product_id", review.ProductID).
			Int64("user_id", review.UserID).
			Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Debug().Int64("review_id", review.ID).Msg("review created")
	return review, nil
}

// AverageByProduct returns the mean rating for a product, 0 when unreviewed.
func (r *reviewRepository) AverageByProduct(ctx context.Context, productID int64) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1`, productID).
		Scan(&avg)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to average reviews")
		return 0, fmt.Errorf("failed to average reviews: %w", err)
	}
	return avg, nil
}

// CountByUser returns the number of reviews authored by a user.
func (r *reviewRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count reviews")
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
