// Package services implements one thin orchestration per checkout
// endpoint. Control flow is strictly linear: authenticate, validate,
// make exactly one store and/or processor call, classify the outcome.
package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

type OrderService struct {
	identity application.Identity
	store    application.OrderStore
	logger   *slog.Logger
}

func NewOrderService(identity application.Identity, store application.OrderStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		identity: identity,
		store:    store,
		logger:   logger,
	}
}

// CreateOrderResult is the success payload of order creation.
type CreateOrderResult struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// Create places an order for the authenticated caller. The store-side
// create_order procedure owns stock checks and totals; this method only
// gates on identity, rejects an empty cart, and classifies the outcome.
func (s *OrderService) Create(ctx context.Context, token string, items []domain.OrderItem) (*CreateOrderResult, error) {
	user, err := s.identity.GetCurrentUser(ctx, token)
	if err != nil || user == nil {
		return nil, domain.NewUnauthenticatedError()
	}

	if len(items) == 0 {
		return nil, domain.NewValidationError("The item list cannot be empty")
	}

	receipt, err := s.store.CreateOrder(ctx, token, items)
	if err != nil {
		s.logger.Error("create_order call failed", "user_id", user.ID, "error", err)
		return nil, domain.NewUpstreamError("internal server error", err)
	}

	if receipt.Rejected() {
		return nil, domain.NewBusinessConflictError(receipt.Message)
	}

	return &CreateOrderResult{
		OrderID: receipt.OrderID,
		Message: "Order created successfully!",
	}, nil
}
