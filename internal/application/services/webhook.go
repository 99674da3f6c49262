package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// WebhookService verifies processor event deliveries and applies the one
// event type that matters: a succeeded payment marks its order SUCCESS.
// The update is absolute and keyed by order id, so a redelivered event is
// a no-op after the first application.
type WebhookService struct {
	verifier application.EventVerifier
	store    application.AdminOrderStore
	logger   *slog.Logger
}

func NewWebhookService(verifier application.EventVerifier, store application.AdminOrderStore, logger *slog.Logger) *WebhookService {
	return &WebhookService{
		verifier: verifier,
		store:    store,
		logger:   logger,
	}
}

// WebhookAck tells the provider the delivery landed and must not be
// retried. It is returned for every recognized and unrecognized event
// type alike.
type WebhookAck struct {
	Received bool `json:"received"`
}

// Handle runs the verify, parse, branch, update sequence over the literal
// request body bytes. A 400-class failure means the delivery itself was
// bad; only a store failure surfaces as 500 so the provider redelivers.
func (s *WebhookService) Handle(ctx context.Context, payload []byte, sigHeader string) (*WebhookAck, error) {
	if sigHeader == "" {
		return nil, domain.NewValidationError("missing stripe-signature header")
	}

	event, err := s.verifier.VerifyEvent(payload, sigHeader)
	if err != nil {
		s.logger.Error("webhook signature verification failed", "error", err)
		return nil, domain.NewValidationError("webhook signature verification failed")
	}

	if event.Type == application.EventPaymentSucceeded {
		orderID := event.Data.Object.Metadata[application.MetadataOrderID]
		if orderID == "" {
			return nil, domain.NewValidationError("event metadata is missing the order id")
		}

		s.logger.Info("payment intent succeeded",
			"payment_intent_id", event.Data.Object.ID,
			"order_id", orderID,
		)

		if err := s.store.SetOrderStatus(ctx, orderID, domain.StatusSuccess); err != nil {
			s.logger.Error("failed to mark order paid", "order_id", orderID, "error", err)
			return nil, domain.NewUpstreamError("internal server error", err)
		}
	}

	return &WebhookAck{Received: true}, nil
}
