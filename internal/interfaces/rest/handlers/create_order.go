package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest"
)

type CreateOrderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

// HandleCreateOrder places an order from the caller's cart. The heavy
// lifting (stock, totals, persistence) is the store procedure's; this
// endpoint authenticates, rejects an empty cart, and relays the receipt.
func (h *CheckoutHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	var req CreateOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	result, err := h.orders.Create(r.Context(), bearerToken(r), req.Items)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
