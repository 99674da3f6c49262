package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/stripe"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAdminStore struct {
	updates map[string]domain.OrderStatus
}

func (s *recordingAdminStore) UpdateOrderStatus(_ context.Context, orderID string, _, next domain.OrderStatus) (*domain.Order, error) {
	s.updates[orderID] = next
	return &domain.Order{ID: orderID, Status: next}, nil
}

func (s *recordingAdminStore) SetOrderStatus(_ context.Context, orderID string, next domain.OrderStatus) error {
	s.updates[orderID] = next
	return nil
}

// Exercises the webhook endpoint with the real verifier and service so the
// whole chain from signed bytes to store update is covered.
func TestStripeWebhook_EndToEnd(t *testing.T) {
	const secret = "whsec_e2e_secret"

	store := &recordingAdminStore{updates: map[string]domain.OrderStatus{}}
	verifier := stripe.NewWebhookVerifier(secret, stripe.DefaultTolerance)
	webhooks := services.NewWebhookService(verifier, store, testLogger())

	handler := handlers.NewCheckoutHandler(
		&mockOrderCreator{},
		&mockIntentCreator{},
		&mockPaymentCapturer{},
		&mockOrderExporter{},
		webhooks,
		testLogger(),
	)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	payload := []byte(`{
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_123",
				"metadata": {"order_id": "order-456"}
			}
		}
	}`)

	deliver := func(t *testing.T, body []byte, sigHeader string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, server.URL+"/stripe-webhook", strings.NewReader(string(body)))
		require.NoError(t, err)
		if sigHeader != "" {
			req.Header.Set(handlers.SignatureHeader, sigHeader)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	t.Run("signed delivery marks the order paid", func(t *testing.T) {
		resp := deliver(t, payload, stripe.SignPayload(secret, time.Now(), payload))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"received": true}`, readBody(t, resp))
		assert.Equal(t, domain.StatusSuccess, store.updates["order-456"])
	})

	t.Run("redelivery is acknowledged again", func(t *testing.T) {
		resp := deliver(t, payload, stripe.SignPayload(secret, time.Now(), payload))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"received": true}`, readBody(t, resp))
	})

	t.Run("missing signature header", func(t *testing.T) {
		resp := deliver(t, payload, "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error": "missing stripe-signature header"}`, readBody(t, resp))
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		resp := deliver(t, payload, stripe.SignPayload("whsec_other", time.Now(), payload))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error": "webhook signature verification failed"}`, readBody(t, resp))
	})

	t.Run("tampered payload", func(t *testing.T) {
		sig := stripe.SignPayload(secret, time.Now(), payload)
		tampered := []byte(strings.Replace(string(payload), "order-456", "order-666", 1))

		resp := deliver(t, tampered, sig)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotContains(t, store.updates, "order-666")
	})
}
