package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// Currency every intent is created in. The storefront prices in BRL.
const intentCurrency = "brl"

type PaymentIntentService struct {
	store    application.OrderStore
	provider application.PaymentProvider
	logger   *slog.Logger
}

func NewPaymentIntentService(store application.OrderStore, provider application.PaymentProvider, logger *slog.Logger) *PaymentIntentService {
	return &PaymentIntentService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// CreateIntentResult carries the client secret the frontend needs to
// collect the payment. It is returned exactly as the processor minted it.
type CreateIntentResult struct {
	ClientSecret string `json:"client_secret"`
}

// Create looks up the order's total under the caller's credential and
// creates a processor payment intent for that amount, stamping the order
// id into the intent metadata for webhook correlation.
func (s *PaymentIntentService) Create(ctx context.Context, token string, orderID string) (*CreateIntentResult, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("order_id is required")
	}

	total, err := s.store.GetOrderTotal(ctx, token, orderID)
	if err != nil {
		// A lookup the caller cannot see and a genuinely absent row are
		// indistinguishable here, and both read as "order not found".
		return nil, domain.NewNotFoundError("order not found")
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, total, intentCurrency, map[string]string{
		application.MetadataOrderID: orderID,
	})
	if err != nil {
		s.logger.Error("payment intent creation failed", "order_id", orderID, "error", err)
		return nil, domain.NewUpstreamError("internal server error", err)
	}

	return &CreateIntentResult{ClientSecret: intent.ClientSecret}, nil
}
