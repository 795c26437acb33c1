package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/slug"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves all categories. An empty list is a valid result.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID.
func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// GetBySlug retrieves a category by slug.
func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", categorySlug).Msg("failed to get category by slug")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// Create inserts an empty placeholder category, filled in by a later update.
func (s *categoryService) Create(ctx context.Context) (*model.Category, error) {
	category, err := s.categoryRepo.Create(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category created")
	return category, nil
}

// Update sets the category name; the slug is regenerated from it.
func (s *categoryService) Update(ctx context.Context, id int64, update model.CategoryUpdate) (*model.Category, error) {
	category, err := s.categoryRepo.Update(ctx, id, update.Name, slug.Make(update.Name))
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category updated")
	return category, nil
}

// Delete removes a category.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}
