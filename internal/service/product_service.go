package service

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/slug"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List returns one page of products plus the total count over the same filter.
func (s *productService) List(ctx context.Context, criteria catalog.Criteria, sort catalog.SortKey, page catalog.Pagination) (*model.ProductPage, error) {
	products, count, err := s.productRepo.List(ctx, criteria, sort, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("returned", len(products)).
		Int64("count", count).
		Msg("listed products")

	return &model.ProductPage{Products: products, Count: count}, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// GetBySlug retrieves a single product by slug.
func (s *productService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", productSlug).Msg("failed to get product by slug")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// ListByCategory returns all products in the category with the given slug.
// An unknown slug yields an empty list, not an error.
func (s *productService) ListByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	products, err := s.productRepo.ListByCategorySlug(ctx, categorySlug)
	if err != nil {
		s.logger.Error().Err(err).Str("category_slug", categorySlug).Msg("failed to list products by category")
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

// ListSimilar returns other products sharing the source product's category
// name, newest first. The source product itself is never included.
func (s *productService) ListSimilar(ctx context.Context, id int64) ([]model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Drafts have no category yet, so nothing is similar to them.
	if product.Category == nil {
		return []model.Product{}, nil
	}

	products, err := s.productRepo.ListSimilar(ctx, product.Category.Name, product.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to list similar products")
		return nil, fmt.Errorf("failed to list similar products: %w", err)
	}
	return products, nil
}

// CreateDraft allocates an empty product record. The client fills it in with
// a follow-up Update call.
func (s *productService) CreateDraft(ctx context.Context) (int64, error) {
	id, err := s.productRepo.CreateDraft(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create draft product")
		return 0, fmt.Errorf("failed to create draft product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("draft product created")
	return id, nil
}

// Update fills in the product's content. The target category must exist and
// the slug is regenerated from the new name.
func (s *productService) Update(ctx context.Context, id int64, update model.ProductUpdate) (*model.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, update.CategoryID)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", update.CategoryID).Msg("failed to check category")
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		s.logger.Warn().
			Int64("product_id", id).
			Int64("category_id", update.CategoryID).
			Msg("update references unknown category")
		return nil, model.ErrCategoryNotFound
	}

	updated, err := s.productRepo.Update(ctx, id, slug.Make(update.Name), update)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !updated {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return s.GetByID(ctx, id)
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
