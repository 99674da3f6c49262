package services_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockIdentity struct {
	getCurrentUserFn func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockIdentity) GetCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return m.getCurrentUserFn(ctx, token)
}

func allowAnyUser() *mockIdentity {
	return &mockIdentity{
		getCurrentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "user@example.com"}, nil
		},
	}
}

func denyAllUsers() *mockIdentity {
	return &mockIdentity{
		getCurrentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, application.ErrNoUser
		},
	}
}

type mockOrderStore struct {
	createOrderFn      func(ctx context.Context, token string, items []domain.OrderItem) (*domain.OrderReceipt, error)
	getOrderTotalFn    func(ctx context.Context, token string, orderID string) (int64, error)
	listOrderDetailsFn func(ctx context.Context, token string) ([]domain.OrderDetailRow, error)

	createOrderCalls int
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (*domain.OrderReceipt, error) {
	m.createOrderCalls++
	return m.createOrderFn(ctx, token, items)
}

func (m *mockOrderStore) GetOrderTotal(ctx context.Context, token string, orderID string) (int64, error) {
	return m.getOrderTotalFn(ctx, token, orderID)
}

func (m *mockOrderStore) ListOrderDetails(ctx context.Context, token string) ([]domain.OrderDetailRow, error) {
	return m.listOrderDetailsFn(ctx, token)
}

type mockAdminStore struct {
	updateOrderStatusFn func(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error)
	setOrderStatusFn    func(ctx context.Context, orderID string, next domain.OrderStatus) error

	setOrderStatusCalls int
}

func (m *mockAdminStore) UpdateOrderStatus(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
	return m.updateOrderStatusFn(ctx, orderID, expected, next)
}

func (m *mockAdminStore) SetOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	m.setOrderStatusCalls++
	return m.setOrderStatusFn(ctx, orderID, next)
}

type mockPaymentProvider struct {
	createPaymentIntentFn func(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error)
}

func (m *mockPaymentProvider) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error) {
	return m.createPaymentIntentFn(ctx, amountCents, currency, metadata)
}

type mockEventVerifier struct {
	verifyEventFn func(payload []byte, sigHeader string) (*application.PaymentEvent, error)

	verifyCalls int
}

func (m *mockEventVerifier) VerifyEvent(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
	m.verifyCalls++
	return m.verifyEventFn(payload, sigHeader)
}
