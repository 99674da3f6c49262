package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest"
)

type CreatePaymentIntentRequest struct {
	OrderID string `json:"order_id"`
}

// HandleCreatePaymentIntent prepares a processor charge for an order the
// caller can see and returns the client secret the frontend needs to
// collect the payment.
func (h *CheckoutHandler) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	var req CreatePaymentIntentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		rest.WriteError(w, domain.NewMalformedInputError(err), h.logger)
		return
	}

	result, err := h.intents.Create(r.Context(), bearerToken(r), req.OrderID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, result)
}
