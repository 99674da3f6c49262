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

func succeededEvent(orderID string) *application.PaymentEvent {
	event := &application.PaymentEvent{Type: application.EventPaymentSucceeded}
	event.Data.Object.ID = "pi_1"
	event.Data.Object.Metadata = map[string]string{}
	if orderID != "" {
		event.Data.Object.Metadata[application.MetadataOrderID] = orderID
	}
	return event
}

func TestWebhookService_Handle_PaymentSucceeded(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return succeededEvent("order-123"), nil
		},
	}
	store := &mockAdminStore{
		setOrderStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) error {
			assert.Equal(t, "order-123", orderID)
			assert.Equal(t, domain.StatusSuccess, next)
			return nil
		},
	}
	service := services.NewWebhookService(verifier, store, testLogger())

	ack, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=abc")

	require.NoError(t, err)
	assert.True(t, ack.Received)
	assert.Equal(t, 1, store.setOrderStatusCalls)
}

func TestWebhookService_Handle_RedeliveryIsIdempotent(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return succeededEvent("order-123"), nil
		},
	}
	statuses := map[string]domain.OrderStatus{"order-123": domain.StatusPending}
	store := &mockAdminStore{
		setOrderStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) error {
			statuses[orderID] = next
			return nil
		},
	}
	service := services.NewWebhookService(verifier, store, testLogger())

	for i := 0; i < 2; i++ {
		ack, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=abc")
		require.NoError(t, err)
		assert.True(t, ack.Received)
	}

	assert.Equal(t, domain.StatusSuccess, statuses["order-123"])
}

func TestWebhookService_Handle_MissingSignatureHeader(t *testing.T) {
	verifier := &mockEventVerifier{}
	service := services.NewWebhookService(verifier, &mockAdminStore{}, testLogger())

	_, err := service.Handle(context.Background(), []byte(`{}`), "")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	assert.Zero(t, verifier.verifyCalls, "verification must not be attempted without a signature header")
}

func TestWebhookService_Handle_BadSignature(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return nil, errors.New("no valid signature found")
		},
	}
	service := services.NewWebhookService(verifier, &mockAdminStore{}, testLogger())

	_, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=bad")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
}

func TestWebhookService_Handle_UnrecognizedEventType(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return &application.PaymentEvent{Type: "charge.refunded"}, nil
		},
	}
	store := &mockAdminStore{}
	service := services.NewWebhookService(verifier, store, testLogger())

	ack, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=abc")

	require.NoError(t, err)
	assert.True(t, ack.Received)
	assert.Zero(t, store.setOrderStatusCalls, "unrecognized events must not touch the store")
}

func TestWebhookService_Handle_MissingCorrelationID(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return succeededEvent(""), nil
		},
	}
	store := &mockAdminStore{}
	service := services.NewWebhookService(verifier, store, testLogger())

	_, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=abc")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	assert.Zero(t, store.setOrderStatusCalls)
}

func TestWebhookService_Handle_StoreFailureRequestsRedelivery(t *testing.T) {
	verifier := &mockEventVerifier{
		verifyEventFn: func(payload []byte, sigHeader string) (*application.PaymentEvent, error) {
			return succeededEvent("order-123"), nil
		},
	}
	store := &mockAdminStore{
		setOrderStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) error {
			return errors.New("connection refused")
		},
	}
	service := services.NewWebhookService(verifier, store, testLogger())

	_, err := service.Handle(context.Background(), []byte(`{}`), "t=1,v1=abc")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeUpstream))
}
