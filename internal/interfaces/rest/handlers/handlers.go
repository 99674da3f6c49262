// Package handlers wires the five checkout endpoints. Each handler is a
// thin, strictly linear orchestration: read and normalize the body, hand
// off to its service, map the result to a response. No handler keeps
// state between requests.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

type OrderCreator interface {
	Create(ctx context.Context, token string, items []domain.OrderItem) (*services.CreateOrderResult, error)
}

type IntentCreator interface {
	Create(ctx context.Context, token string, orderID string) (*services.CreateIntentResult, error)
}

type PaymentCapturer interface {
	Process(ctx context.Context, orderID string, status domain.OrderStatus) (*services.CaptureResult, error)
}

type OrderExporter interface {
	Export(ctx context.Context, token string) (*services.ExportResult, error)
}

type WebhookProcessor interface {
	Handle(ctx context.Context, payload []byte, sigHeader string) (*services.WebhookAck, error)
}

type CheckoutHandler struct {
	orders   OrderCreator
	intents  IntentCreator
	captures PaymentCapturer
	exports  OrderExporter
	webhooks WebhookProcessor
	logger   *slog.Logger
}

func NewCheckoutHandler(
	orders OrderCreator,
	intents IntentCreator,
	captures PaymentCapturer,
	exports OrderExporter,
	webhooks WebhookProcessor,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		intents:  intents,
		captures: captures,
		exports:  exports,
		webhooks: webhooks,
		logger:   logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /create-order", h.HandleCreateOrder)
	mux.HandleFunc("POST /create-payment-intent", h.HandleCreatePaymentIntent)
	mux.HandleFunc("POST /generate-csv", h.HandleGenerateCSV)
	mux.HandleFunc("POST /process-payment", h.HandleProcessPayment)
	mux.HandleFunc("POST /stripe-webhook", h.HandleStripeWebhook)
}

// bearerToken extracts the caller's credential from the Authorization
// header. An empty result is not an error here; identity-gated services
// reject it downstream.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
