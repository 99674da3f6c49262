package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest"
)

type ProcessPaymentRequest struct {
	OrderID     string             `json:"order_id"`
	OrderStatus domain.OrderStatus `json:"order_status"`
}

// HandleProcessPayment simulates a capture: it moves a pending order to a
// terminal status without involving the processor. order_status defaults
// to SUCCESS when omitted.
func (h *CheckoutHandler) HandleProcessPayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	var req ProcessPaymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	result, err := h.captures.Process(r.Context(), req.OrderID, req.OrderStatus)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
