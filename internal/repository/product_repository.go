package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productColumns selects a product with its (possibly absent) category.
// Drafts have NULL slug and NULL category_id, so the nullable columns are
// coalesced into zero values for scanning.
const productColumns = `p.id, p.name, COALESCE(p.slug, ''), p.description, p.price, p.images, p.created_at,
		COALESCE(c.id, 0), COALESCE(c.name, ''), COALESCE(c.slug, '')`

const productFrom = `FROM products p LEFT JOIN categories c ON c.id = p.category_id`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List executes the paginated read and the count read over one shared predicate.
func (r *productRepository) List(ctx context.Context, criteria catalog.Criteria, sort catalog.SortKey, page catalog.Pagination) ([]model.Product, int64, error) {
	pred := catalog.BuildPredicate(criteria)
	offset, limit := page.OffsetLimit()

	listQuery := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, productFrom, pred.Clause, sort.OrderBy(), len(pred.Args)+1, len(pred.Args)+2)

	args := append(append([]any{}, pred.Args...), limit, offset)
	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s WHERE %s`, productFrom, pred.Clause)

	var count int64
	if err := r.pool.QueryRow(ctx, countQuery, pred.Args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, count, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, productColumns, productFrom)
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves a single product by its slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.slug = $1`, productColumns, productFrom)
	return r.getOne(ctx, query, slug)
}

func (r *productRepository) getOne(ctx context.Context, query string, arg any) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// ListByCategorySlug retrieves all products in the category with the slug.
func (r *productRepository) ListByCategorySlug(ctx context.Context, categorySlug string) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE c.slug = $1
		ORDER BY p.created_at DESC
	`, productColumns, productFrom)

	rows, err := r.pool.Query(ctx, query, categorySlug)
	if err != nil {
		r.logger.Error().Err(err).Str("category_slug", categorySlug).Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	return scanProducts(rows)
}

// ListSimilar retrieves products sharing the category name, newest first.
// Matching is by category name, so two categories with the same name pool
// their products together.
func (r *productRepository) ListSimilar(ctx context.Context, categoryName string, excludeID int64) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE c.name = $1 AND p.id <> $2
		ORDER BY p.created_at DESC
	`, productColumns, productFrom)

	rows, err := r.pool.Query(ctx, query, categoryName, excludeID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category_name", categoryName).
			Int64("exclude_id", excludeID).
			Msg("failed to query similar products")
		return nil, fmt.Errorf("failed to query similar products: %w", err)
	}
	return scanProducts(rows)
}

// CreateDraft inserts an empty product record and returns its ID. The slug is
// NULL rather than empty so the unique index tolerates multiple drafts.
func (r *productRepository) CreateDraft(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO products (name, slug, description, price, images)
		VALUES ('', NULL, '', 0, '{}')
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query).Scan(&id); err != nil {
		r.logger.Error().Err(err).Msg("failed to create draft product")
		return 0, fmt.Errorf("failed to create draft product: %w", err)
	}

	r.logger.Debug().Int64("product_id", id).Msg("draft product created")
	return id, nil
}

// Update applies the editable fields and the regenerated slug.
func (r *productRepository) Update(ctx context.Context, id int64, slug string, update model.ProductUpdate) (bool, error) {
	query := `
		UPDATE products
		SET name = $1, slug = NULLIF($2, ''), description = $3, price = $4, images = $5, category_id = $6
		WHERE id = $7
	`

	images := update.Images
	if images == nil {
		images = []string{}
	}

	tag, err := r.pool.Exec(ctx, query,
		update.Name, slug, update.Description, update.Price, images, update.CategoryID, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanProduct scans one joined product row.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p        model.Product
		category model.Category
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Images, &p.CreatedAt,
		&category.ID, &category.Name, &category.Slug,
	)
	if err != nil {
		return nil, err
	}
	if category.ID != 0 {
		p.Category = &category
	}
	return &p, nil
}

// scanProducts drains rows of joined product rows.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
