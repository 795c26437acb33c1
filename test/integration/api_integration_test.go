package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	productService := service.NewProductService(productRepo, categoryRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	statisticsService := service.NewStatisticsService(orderRepo, reviewRepo, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, logger)

	return router.New(productHandler, categoryHandler, reviewHandler, orderHandler, statisticsHandler, logger)
}

func asUser(req *http.Request, userID int64) *http.Request {
	req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))
	return req
}

func asAdmin(req *http.Request, userID int64) *http.Request {
	asUser(req, userID)
	req.Header.Set("X-User-Role", "admin")
	return req
}

func TestCatalogAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/products returns a page with total count", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products?sort=low-price", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var page model.ProductPage
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Equal(t, int64(3), page.Count)
		require.Len(t, page.Products, 3)
		assert.Equal(t, "Wooden Chair", page.Products[0].Name)
	})

	t.Run("GET /api/products filter and count stay consistent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet,
			"/api/products?searchTerm=chair&perPage=1&page=2", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var page model.ProductPage
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Equal(t, int64(2), page.Count)
		assert.Len(t, page.Products, 1)
	})

	t.Run("GET /api/products/by-slug", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/by-slug/standing-desk", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
		assert.Equal(t, "Standing Desk", product.Name)

		req = httptest.NewRequest(http.MethodGet, "/api/products/by-slug/missing", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin creates a draft and fills it in", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seed := SeedCatalog(t, testDB.Pool)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/products", nil), 1)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var created map[string]int64
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		id := created["id"]
		require.Positive(t, id)

		body, _ := json.Marshal(model.ProductUpdate{
			Name:        "Office Chair",
			Description: "ergonomic",
			Price:       250,
			CategoryID:  seed.ChairsID,
		})
		req = asAdmin(httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/api/products/%d", id), bytes.NewReader(body)), 1)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
		assert.Equal(t, "office-chair", product.Slug)
	})

	t.Run("admin catalogue operations reject non-admin callers", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/products", nil), 7)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("place order then pay it through the webhook", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seed := SeedCatalog(t, testDB.Pool)

		body, _ := json.Marshal(model.OrderRequest{
			Items: []model.OrderItemRequest{
				{ProductID: seed.WoodenChairID, Quantity: 2, Price: 100},
				{ProductID: seed.StandingDeskID, Quantity: 1, Price: 500},
			},
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body)), seed.UserID)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var order model.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
		assert.Equal(t, int64(700), order.Total)
		assert.Equal(t, model.OrderStatusPending, order.Status)

		webhook, _ := json.Marshal(model.PaymentEvent{
			Event: model.PaymentEventSucceeded,
			Object: model.PaymentObject{
				ID:             "pay-1",
				OrderReference: order.PaymentReference.String(),
			},
		})

		// The provider delivers at least once; both deliveries succeed and the
		// order ends up PAYED exactly once.
		for i := 0; i < 2; i++ {
			req = httptest.NewRequest(http.MethodPost, "/api/orders/status", bytes.NewReader(webhook))
			w = httptest.NewRecorder()
			server.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		req = asUser(httptest.NewRequest(http.MethodGet, "/api/orders", nil), seed.UserID)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var orders []model.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
		require.Len(t, orders, 1)
		assert.Equal(t, model.OrderStatusPayed, orders[0].Status)
		assert.Len(t, orders[0].Items, 2)
	})

	t.Run("webhook rejects malformed references", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		webhook, _ := json.Marshal(model.PaymentEvent{
			Event:  model.PaymentEventSucceeded,
			Object: model.PaymentObject{ID: "pay-2", OrderReference: "not-a-uuid"},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/status", bytes.NewReader(webhook))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("webhook reports unknown orders for retry", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		webhook, _ := json.Marshal(model.PaymentEvent{
			Event:  model.PaymentEventSucceeded,
			Object: model.PaymentObject{ID: "pay-3", Description: "Order #99999"},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/status", bytes.NewReader(webhook))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /api/statistics/main", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seed := SeedCatalog(t, testDB.Pool)

		body, _ := json.Marshal(model.OrderRequest{
			Items: []model.OrderItemRequest{{ProductID: seed.WoodenChairID, Quantity: 1, Price: 100}},
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body)), seed.UserID)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = asUser(httptest.NewRequest(http.MethodGet, "/api/statistics/main", nil), seed.UserID)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var stats model.UserStatistics
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
		assert.Equal(t, int64(1), stats.Orders)
		assert.Equal(t, int64(100), stats.TotalSpent)
		assert.Zero(t, stats.Reviews)
	})
}
