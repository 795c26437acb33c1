package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder computes the total from the submitted items and creates the
// order atomically in PENDING status. Unit prices come from the client and
// are captured as-is; the total is fixed here and never re-derived.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	var total int64
	for _, item := range req.Items {
		total += int64(item.Quantity) * item.Price
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		UserID:           userID,
		Status:           model.OrderStatusPending,
		Total:            total,
		PaymentReference: uuid.New(),
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order.Items = items

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Int64("total", total).
		Str("payment_reference", order.PaymentReference.String()).
		Msg("order placed")

	return order, nil
}

// ListByUser returns the user's orders, newest first. An empty list is a
// valid result.
func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ApplyPaymentEvent dispatches an inbound payment notification. Delivery is
// at-least-once and may be out of order, so the succeeded transition is
// idempotent and an unknown order surfaces as NotFound for the sender to
// retry.
func (s *orderService) ApplyPaymentEvent(ctx context.Context, event *model.PaymentEvent) (*model.Order, error) {
	switch event.Event {
	case model.PaymentEventSucceeded:
		return s.applySucceeded(ctx, event.Object)

	case model.PaymentEventWaitingForCapture:
		// Capture confirmation is handled by the provider; nothing to do yet.
		s.logger.Debug().Str("payment_id", event.Object.ID).Msg("payment waiting for capture")
		return nil, nil

	default:
		s.logger.Debug().
			Str("event", event.Event).
			Str("payment_id", event.Object.ID).
			Msg("ignoring unhandled payment event")
		return nil, nil
	}
}

func (s *orderService) applySucceeded(ctx context.Context, obj model.PaymentObject) (*model.Order, error) {
	order, err := s.resolveOrder(ctx, obj)
	if err != nil {
		return nil, err
	}
	if order == nil {
		// The order may simply not be visible yet; the sender retries.
		s.logger.Error().
			Str("payment_id", obj.ID).
			Str("order_reference", obj.OrderReference).
			Msg("payment succeeded for unknown order")
		return nil, model.ErrOrderNotFound
	}

	if order.Status.Terminal() {
		if order.Status == model.OrderStatusCanceled {
			s.logger.Warn().
				Int64("order_id", order.ID).
				Msg("payment succeeded for canceled order, ignoring")
		}
		return order, nil
	}

	updated, err := s.orderRepo.MarkPayed(ctx, order.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to transition order")
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if !updated {
		// Lost a race against a duplicate delivery; re-read the final state.
		order, err = s.orderRepo.GetByID(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read order: %w", err)
		}
		return order, nil
	}

	order.Status = model.OrderStatusPayed
	s.logger.Info().
		Int64("order_id", order.ID).
		Str("payment_id", obj.ID).
		Msg("order payed")

	return order, nil
}

// resolveOrder finds the order a payment object refers to: by the explicit
// payment reference when present, otherwise by the legacy "... #<id>"
// description format. An unparseable reference is a malformed event, which is
// surfaced rather than swallowed so the order does not silently stay PENDING.
func (s *orderService) resolveOrder(ctx context.Context, obj model.PaymentObject) (*model.Order, error) {
	if obj.OrderReference != "" {
		ref, err := uuid.Parse(obj.OrderReference)
		if err != nil {
			s.logger.Error().
				Str("payment_id", obj.ID).
				Str("order_reference", obj.OrderReference).
				Msg("payment event carries invalid order reference")
			return nil, model.ErrMalformedEvent
		}
		return s.orderRepo.GetByReference(ctx, ref)
	}

	id, ok := orderIDFromDescription(obj.Description)
	if !ok {
		s.logger.Error().
			Str("payment_id", obj.ID).
			Str("description", obj.Description).
			Msg("payment event description does not reference an order")
		return nil, model.ErrMalformedEvent
	}
	return s.orderRepo.GetByID(ctx, id)
}

// orderIDFromDescription extracts the order ID from a "... #<id>" description.
func orderIDFromDescription(description string) (int64, bool) {
	_, tail, found := strings.Cut(description, "#")
	if !found {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(tail), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("item %d: product ID is required", i)
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: price must not be negative", i)
		}
	}

	return nil
}
