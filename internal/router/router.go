package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Catalogue reads and the payment webhook are public; everything else needs a
// gateway principal, with the admin catalogue operations additionally gated
// on the admin role.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	reviewHandler *handler.ReviewHandler,
	orderHandler *handler.OrderHandler,
	statisticsHandler *handler.StatisticsHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(logger)
	requireAdmin := middleware.RequireRole(middleware.RoleAdmin, logger)

	user := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(h))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/similar/{id}", productHandler.GetSimilar)
	mux.HandleFunc("GET /api/products/by-slug/{slug}", productHandler.GetBySlug)
	mux.HandleFunc("GET /api/products/by-category/{categorySlug}", productHandler.GetByCategory)
	mux.Handle("GET /api/products/{id}", admin(productHandler.GetByID))
	mux.Handle("POST /api/products", admin(productHandler.Create))
	mux.Handle("PUT /api/products/{id}", admin(productHandler.Update))
	mux.Handle("DELETE /api/products/{id}", admin(productHandler.Delete))

	// Categories
	mux.HandleFunc("GET /api/categories/by-slug/{slug}", categoryHandler.GetBySlug)
	mux.Handle("GET /api/categories", user(categoryHandler.List))
	mux.Handle("GET /api/categories/{id}", user(categoryHandler.GetByID))
	mux.Handle("POST /api/categories", user(categoryHandler.Create))
	mux.Handle("PUT /api/categories/{id}", user(categoryHandler.Update))
	mux.Handle("DELETE /api/categories/{id}", user(categoryHandler.Delete))

	// Reviews
	mux.HandleFunc("GET /api/reviews/average/{productId}", reviewHandler.Average)
	mux.Handle("GET /api/reviews", admin(reviewHandler.List))
	mux.Handle("POST /api/reviews/{productId}", user(reviewHandler.Create))

	// Orders and the payment provider webhook
	mux.Handle("GET /api/orders", user(orderHandler.List))
	mux.Handle("GET /api/orders/all", admin(orderHandler.ListAll))
	mux.Handle("POST /api/orders", user(orderHandler.Create))
	mux.HandleFunc("POST /api/orders/status", orderHandler.UpdateStatus)

	// Statistics
	mux.Handle("GET /api/statistics/main", user(statisticsHandler.Main))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
