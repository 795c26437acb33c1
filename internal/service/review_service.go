package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// GetAll retrieves all reviews, newest first.
func (s *reviewService) GetAll(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Create adds a review. The target product must exist.
func (s *reviewService) Create(ctx context.Context, userID, productID int64, req *model.ReviewRequest) (*model.Review, error) {
	if req == nil || req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check product")
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	review, err := s.reviewRepo.Create(ctx, &model.Review{
		Rating:    req.Rating,
		Text:      req.Text,
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Int64("review_id", review.ID).
		Int64("product_id", productID).
		Int("rating", review.Rating).
		Msg("review created")

	return review, nil
}

// AverageByProduct returns the mean rating for a product, 0 when unreviewed.
func (s *reviewService) AverageByProduct(ctx context.Context, productID int64) (float64, error) {
	avg, err := s.reviewRepo.AverageByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to average reviews")
		return 0, fmt.Errorf("failed to average reviews: %w", err)
	}
	return avg, nil
}
