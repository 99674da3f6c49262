package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/export"
)

type ExportService struct {
	identity application.Identity
	store    application.OrderStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewExportService(identity application.Identity, store application.OrderStore, logger *slog.Logger) *ExportService {
	return &ExportService{
		identity: identity,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportResult is a fully buffered CSV document plus the attachment name
// it should be served under.
type ExportResult struct {
	Data     []byte
	Filename string
}

// Export serializes the caller's order history to CSV. The store scopes
// the rows to the caller; an empty history still yields a header-only
// document.
func (s *ExportService) Export(ctx context.Context, token string) (*ExportResult, error) {
	user, err := s.identity.GetCurrentUser(ctx, token)
	if err != nil || user == nil {
		return nil, domain.NewUnauthenticatedError()
	}

	rows, err := s.store.ListOrderDetails(ctx, token)
	if err != nil {
		s.logger.Error("order details query failed", "user_id", user.ID, "error", err)
		return nil, domain.NewUpstreamError("internal server error", err)
	}

	return &ExportResult{
		Data:     export.Marshal(rows),
		Filename: fmt.Sprintf("orders_export_%s.csv", s.now().UTC().Format("2006-01-02")),
	}, nil
}
