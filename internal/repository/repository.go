package repository

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List executes a filtered, sorted, paginated read plus a count over the
	// same predicate. An empty page is a valid result, not an error.
	List(ctx context.Context, criteria catalog.Criteria, sort catalog.SortKey, page catalog.Pagination) ([]model.Product, int64, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySlug retrieves a single product by its slug. Returns nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// ListByCategorySlug retrieves all products whose category has the slug.
	ListByCategorySlug(ctx context.Context, categorySlug string) ([]model.Product, error)

	// ListSimilar retrieves products sharing the given category name, newest
	// first, excluding the product identified by excludeID.
	ListSimilar(ctx context.Context, categoryName string, excludeID int64) ([]model.Product, error)

	// CreateDraft inserts an empty product and returns its ID.
	CreateDraft(ctx context.Context) (int64, error)

	// Update applies the given fields and slug. Returns false when no row
	// matched the ID.
	Update(ctx context.Context, id int64, slug string, update model.ProductUpdate) (bool, error)

	// Delete removes a product. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a category by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// GetBySlug retrieves a category by slug. Returns nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create inserts an empty placeholder category.
	Create(ctx context.Context) (*model.Category, error)

	// Update sets the name and slug. Returns nil when no row matched the ID.
	Update(ctx context.Context, id int64, name, slug string) (*model.Category, error)

	// Delete removes a category. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	GetAll(ctx context.Context) ([]model.Review, error)
	Create(ctx context.Context, review *model.Review) (*model.Review, error)

	// AverageByProduct returns the mean rating for a product, 0 when the
	// product has no reviews.
	AverageByProduct(ctx context.Context, productID int64) (float64, error)

	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in the generated ID and creation timestamp.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ListByUser retrieves a user's orders with their items, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// ListAll retrieves every order with its items, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByReference retrieves an order by its payment reference. Returns nil
	// when absent.
	GetByReference(ctx context.Context, ref uuid.UUID) (*model.Order, error)

	// MarkPayed transitions a PENDING order to PAYED. Returns false when the
	// order was not in PENDING, which callers treat as an idempotent no-op.
	MarkPayed(ctx context.Context, id int64) (bool, error)

	// StatsByUser returns the user's order count and the sum of order totals.
	StatsByUser(ctx context.Context, userID int64) (count int64, total int64, err error)
}
