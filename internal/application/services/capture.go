package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// CaptureService simulates a payment capture by moving a pending order to
// a terminal status directly, without going through the processor. Used by
// staging environments and manual operations.
type CaptureService struct {
	store  application.AdminOrderStore
	logger *slog.Logger
}

func NewCaptureService(store application.AdminOrderStore, logger *slog.Logger) *CaptureService {
	return &CaptureService{
		store:  store,
		logger: logger,
	}
}

// CaptureResult echoes the updated order row.
type CaptureResult struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// Process conditionally updates the order's status. Only orders still
// PENDING are eligible; anything else reads as not found, which also makes
// a repeated capture harmless.
func (s *CaptureService) Process(ctx context.Context, orderID string, status domain.OrderStatus) (*CaptureResult, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("The 'order_id' is required.")
	}
	if status == "" {
		status = domain.StatusSuccess
	}
	if !domain.ValidStatus(status) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown order_status %q", status))
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, domain.StatusPending, status)
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Order with ID %s not found or already processed.", orderID))
		}
		s.logger.Error("order status update failed", "order_id", orderID, "error", err)
		return nil, domain.NewUpstreamError("Database error processing the order.", err)
	}

	return &CaptureResult{
		Message: fmt.Sprintf("Order %s updated to '%s' successfully!", orderID, status),
		Order:   order,
	}, nil
}
