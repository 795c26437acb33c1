package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// statisticsService implements StatisticsService.
type statisticsService struct {
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
	logger zerolog.Logger,
) StatisticsService {
	return &statisticsService{
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "statistics").Logger(),
	}
}

// ForUser computes the user's account summary.
func (s *statisticsService) ForUser(ctx context.Context, userID int64) (*model.UserStatistics, error) {
	orders, total, err := s.orderRepo.StatsByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to aggregate orders")
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	reviews, err := s.reviewRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count reviews")
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	return &model.UserStatistics{
		Orders:     orders,
		Reviews:    reviews,
		TotalSpent: total,
	}, nil
}
