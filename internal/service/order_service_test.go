package service

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByReference(ctx context.Context, ref uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPayed(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) StatsByUser(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx - not used by these tests.
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	req := &model.OrderRequest{
		Items: []model.OrderItemRequest{
			{ProductID: 1, Quantity: 2, Price: 10},
			{ProductID: 2, Quantity: 1, Price: 5},
		},
	}

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.Order).ID = 42
		}).
		Return(nil)
	mockRepo.On("CreateOrderItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := svc.PlaceOrder(ctx, 7, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, int64(7), order.UserID)
	assert.Equal(t, int64(25), order.Total)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.NotEqual(t, uuid.Nil, order.PaymentReference)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, int64(42), item.OrderID)
	}

	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *model.OrderRequest
		wantErr error
	}{
		{
			name:    "nil request",
			req:     nil,
			wantErr: nil, // plain error, just must fail
		},
		{
			name:    "no items",
			req:     &model.OrderRequest{},
			wantErr: nil,
		},
		{
			name: "zero quantity",
			req: &model.OrderRequest{
				Items: []model.OrderItemRequest{{ProductID: 1, Quantity: 0, Price: 10}},
			},
			wantErr: model.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req: &model.OrderRequest{
				Items: []model.OrderItemRequest{{ProductID: 1, Quantity: -2, Price: 10}},
			},
			wantErr: model.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := NewOrderService(mockRepo, zerolog.Nop())

			_, err := svc.PlaceOrder(ctx, 7, tt.req)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		})
	}
}

func TestOrderService_PlaceOrder_RollbackOnItemFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockTx := new(MockTx)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	req := &model.OrderRequest{
		Items: []model.OrderItemRequest{{ProductID: 1, Quantity: 1, Price: 10}},
	}

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockRepo.On("CreateOrderItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).
		Return(assert.AnError)
	mockTx.On("Rollback", ctx).Return(nil)

	_, err := svc.PlaceOrder(ctx, 7, req)

	require.Error(t, err)
	mockTx.AssertCalled(t, "Rollback", ctx)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestOrderService_ListByUser_EmptyIsSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	mockRepo.On("ListByUser", ctx, int64(7)).Return([]model.Order{}, nil)

	orders, err := svc.ListByUser(ctx, 7)

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ApplyPaymentEvent_SucceededByReference(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	ref := uuid.New()
	pending := &model.Order{ID: 42, Status: model.OrderStatusPending, PaymentReference: ref}

	mockRepo.On("GetByReference", ctx, ref).Return(pending, nil)
	mockRepo.On("MarkPayed", ctx, int64(42)).Return(true, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{ID: "pay-1", OrderReference: ref.String()},
	}

	order, err := svc.ApplyPaymentEvent(ctx, event)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderStatusPayed, order.Status)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_ApplyPaymentEvent_SucceededByLegacyDescription(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	pending := &model.Order{ID: 42, Status: model.OrderStatusPending}
	mockRepo.On("GetByID", ctx, int64(42)).Return(pending, nil)
	mockRepo.On("MarkPayed", ctx, int64(42)).Return(true, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{ID: "pay-1", Description: "Order #42"},
	}

	order, err := svc.ApplyPaymentEvent(ctx, event)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderStatusPayed, order.Status)
}

func TestOrderService_ApplyPaymentEvent_Idempotent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	ref := uuid.New()
	payed := &model.Order{ID: 42, Status: model.OrderStatusPayed, PaymentReference: ref}
	mockRepo.On("GetByReference", ctx, ref).Return(payed, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{OrderReference: ref.String()},
	}

	// A duplicate delivery must not error and must leave the order PAYED.
	order, err := svc.ApplyPaymentEvent(ctx, event)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderStatusPayed, order.Status)
	mockRepo.AssertNotCalled(t, "MarkPayed", mock.Anything, mock.Anything)
}

func TestOrderService_ApplyPaymentEvent_LostRaceRereads(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	ref := uuid.New()
	pending := &model.Order{ID: 42, Status: model.OrderStatusPending, PaymentReference: ref}
	payed := &model.Order{ID: 42, Status: model.OrderStatusPayed, PaymentReference: ref}

	mockRepo.On("GetByReference", ctx, ref).Return(pending, nil)
	mockRepo.On("MarkPayed", ctx, int64(42)).Return(false, nil)
	mockRepo.On("GetByID", ctx, int64(42)).Return(payed, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{OrderReference: ref.String()},
	}

	order, err := svc.ApplyPaymentEvent(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPayed, order.Status)
}

func TestOrderService_ApplyPaymentEvent_CanceledOrderIsNoOp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	ref := uuid.New()
	canceled := &model.Order{ID: 42, Status: model.OrderStatusCanceled, PaymentReference: ref}
	mockRepo.On("GetByReference", ctx, ref).Return(canceled, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{OrderReference: ref.String()},
	}

	order, err := svc.ApplyPaymentEvent(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, order.Status)
	mockRepo.AssertNotCalled(t, "MarkPayed", mock.Anything, mock.Anything)
}

func TestOrderService_ApplyPaymentEvent_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	svc := NewOrderService(mockRepo, zerolog.Nop())

	ref := uuid.New()
	mockRepo.On("GetByReference", ctx, ref).Return(nil, nil)

	event := &model.PaymentEvent{
		Event:  model.PaymentEventSucceeded,
		Object: model.PaymentObject{OrderReference: ref.String()},
	}

	_, err := svc.ApplyPaymentEvent(ctx, event)

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_ApplyPaymentEvent_Malformed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		object model.PaymentObject
	}{
		{"invalid reference", model.PaymentObject{OrderReference: "not-a-uuid"}},
		{"description without marker", model.PaymentObject{Description: "thanks for your purchase"}},
		{"description with non-numeric id", model.PaymentObject{Description: "Order #abc"}},
		{"empty object", model.PaymentObject{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := NewOrderService(mockRepo, zerolog.Nop())

			event := &model.PaymentEvent{Event: model.PaymentEventSucceeded, Object: tt.object}

			_, err := svc.ApplyPaymentEvent(ctx, event)

			assert.ErrorIs(t, err, model.ErrMalformedEvent)
			mockRepo.AssertNotCalled(t, "MarkPayed", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_ApplyPaymentEvent_AcknowledgedWithoutTransition(t *testing.T) {
	ctx := context.Background()

	for _, eventType := range []string{model.PaymentEventWaitingForCapture, "payment.refund.pending"} {
		t.Run(eventType, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := NewOrderService(mockRepo, zerolog.Nop())

			order, err := svc.ApplyPaymentEvent(ctx, &model.PaymentEvent{Event: eventType})

			require.NoError(t, err)
			assert.Nil(t, order)
			mockRepo.AssertNotCalled(t, "MarkPayed", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderIDFromDescription(t *testing.T) {
	tests := []struct {
		description string
		expectedID  int64
		expectedOK  bool
	}{
		{"Order #42", 42, true},
		{"Payment for order #7", 7, true},
		{"#123", 123, true},
		{"no marker", 0, false},
		{"#", 0, false},
		{"#-5", 0, false},
		{"#abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			id, ok := orderIDFromDescription(tt.description)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}
