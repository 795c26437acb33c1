package service

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/model"
)

// ProductService is the catalogue query engine: dynamic filtered listing plus
// the keyed lookups and the two-phase create/update/delete admin operations.
type ProductService interface {
	// List returns one page of products plus the total count over the same
	// filter. An empty page is a valid result.
	List(ctx context.Context, criteria catalog.Criteria, sort catalog.SortKey, page catalog.Pagination) (*model.ProductPage, error)

	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// ListByCategory returns all products in the category with the given slug.
	ListByCategory(ctx context.Context, categorySlug string) ([]model.Product, error)

	// ListSimilar returns other products sharing the source product's category
	// name, newest first.
	ListSimilar(ctx context.Context, id int64) ([]model.Product, error)

	// CreateDraft allocates an empty product record (phase one of the
	// two-phase creation protocol) and returns its ID.
	CreateDraft(ctx context.Context) (int64, error)

	// Update fills in the product's content (phase two).
	Update(ctx context.Context, id int64, update model.ProductUpdate) (*model.Product, error)

	Delete(ctx context.Context, id int64) error
}

// CategoryService manages product categories.
type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context) (*model.Category, error)
	Update(ctx context.Context, id int64, update model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewService manages product reviews.
type ReviewService interface {
	GetAll(ctx context.Context) ([]model.Review, error)

	// Create adds a review to an existing product.
	Create(ctx context.Context, userID, productID int64, req *model.ReviewRequest) (*model.Review, error)

	AverageByProduct(ctx context.Context, productID int64) (float64, error)
}

// OrderService is the order lifecycle manager: placement, listing, and the
// payment-driven status transitions.
type OrderService interface {
	// PlaceOrder computes the order total from the submitted items and creates
	// the order atomically in PENDING status.
	PlaceOrder(ctx context.Context, userID int64, req *model.OrderRequest) (*model.Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ApplyPaymentEvent dispatches an inbound payment notification. The PAYED
	// transition is idempotent; unrecognised event types are acknowledged
	// without a state change. Returns the affected order for succeeded events,
	// nil otherwise.
	ApplyPaymentEvent(ctx context.Context, event *model.PaymentEvent) (*model.Order, error)
}

// StatisticsService computes account summaries.
type StatisticsService interface {
	ForUser(ctx context.Context, userID int64) (*model.UserStatistics, error)
}
