package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order state machine. The only defined transition
// is PENDING -> PAYED, driven by payment notifications. CANCELED is a terminal
// state; a payment event for a canceled order is acknowledged without a
// transition.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPayed    OrderStatus = "PAYED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPayed || s == OrderStatusCanceled
}

// Order is a placed customer order. Total is fixed at placement time; later
// catalogue price changes never alter it. PaymentReference is the identifier
// handed to the payment provider and echoed back by its webhook.
type Order struct {
	ID               int64       `json:"id" db:"id"`
	UserID           int64       `json:"userId" db:"user_id"`
	Status           OrderStatus `json:"status" db:"status"`
	Total            int64       `json:"total" db:"total"`
	PaymentReference uuid.UUID   `json:"paymentReference" db:"payment_reference"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// OrderItem is a line item. Price is the unit price captured when the order
// was placed.
type OrderItem struct {
	ID        int64    `json:"-" db:"id"`
	OrderID   int64    `json:"-" db:"order_id"`
	ProductID int64    `json:"productId" db:"product_id"`
	Quantity  int      `json:"quantity" db:"quantity"`
	Price     int64    `json:"price" db:"price"`
	Product   *Product `json:"product,omitempty"`
}

// OrderRequest is the payload for placing an order.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemRequest is a single requested line item.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// Payment event types delivered by the payment provider.
const (
	PaymentEventSucceeded         = "payment.succeeded"
	PaymentEventWaitingForCapture = "payment.waiting_for_capture"
)

// PaymentEvent is an asynchronous, at-least-once-delivered payment
// notification.
type PaymentEvent struct {
	Event  string        `json:"event"`
	Object PaymentObject `json:"object"`
}

// PaymentObject describes the payment the event refers to. OrderReference is
// the order's payment reference; Description is the legacy free-text field
// ("Order #<id>") kept for providers that do not echo the reference back.
type PaymentObject struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	OrderReference string `json:"order_reference"`
	Description    string `json:"description"`
}
