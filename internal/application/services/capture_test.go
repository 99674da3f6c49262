package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureService_Process_DefaultsToSuccess(t *testing.T) {
	store := &mockAdminStore{
		updateOrderStatusFn: func(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
			assert.Equal(t, domain.StatusPending, expected)
			assert.Equal(t, domain.StatusSuccess, next)
			return &domain.Order{ID: orderID, Status: next}, nil
		},
	}
	service := services.NewCaptureService(store, testLogger())

	result, err := service.Process(context.Background(), "order-123", "")

	require.NoError(t, err)
	assert.Equal(t, "Order order-123 updated to 'SUCCESS' successfully!", result.Message)
	assert.Equal(t, domain.StatusSuccess, result.Order.Status)
}

func TestCaptureService_Process_ExplicitStatus(t *testing.T) {
	store := &mockAdminStore{
		updateOrderStatusFn: func(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
			return &domain.Order{ID: orderID, Status: next}, nil
		},
	}
	service := services.NewCaptureService(store, testLogger())

	result, err := service.Process(context.Background(), "order-123", domain.StatusFailed)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Order.Status)
}

func TestCaptureService_Process_MissingOrderID(t *testing.T) {
	service := services.NewCaptureService(&mockAdminStore{}, testLogger())

	_, err := service.Process(context.Background(), "", "")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	assert.Equal(t, "The 'order_id' is required.", err.(*domain.DomainError).Message)
}

func TestCaptureService_Process_UnknownStatus(t *testing.T) {
	service := services.NewCaptureService(&mockAdminStore{}, testLogger())

	_, err := service.Process(context.Background(), "order-123", "SHIPPED")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
}

func TestCaptureService_Process_NotFoundOrAlreadyProcessed(t *testing.T) {
	store := &mockAdminStore{
		updateOrderStatusFn: func(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
			return nil, application.ErrOrderNotFound
		},
	}
	service := services.NewCaptureService(store, testLogger())

	_, err := service.Process(context.Background(), "order-404", "")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))
	assert.Equal(t, "Order with ID order-404 not found or already processed.", err.(*domain.DomainError).Message)
}

func TestCaptureService_Process_StoreFailure(t *testing.T) {
	store := &mockAdminStore{
		updateOrderStatusFn: func(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
			return nil, errors.New("connection reset")
		},
	}
	service := services.NewCaptureService(store, testLogger())

	_, err := service.Process(context.Background(), "order-123", "")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeUpstream))
	assert.Equal(t, "Database error processing the order.", err.(*domain.DomainError).Message)
}
