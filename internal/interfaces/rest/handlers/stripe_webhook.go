package handlers

import (
	"io"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest"
)

// SignatureHeader carries the processor's delivery signature.
const SignatureHeader = "stripe-signature"

// HandleStripeWebhook receives processor event deliveries. The body must
// reach verification as literal bytes; it is never re-parsed before the
// signature checks out. A 200 tells the processor not to redeliver; only
// a store failure answers 500 to request redelivery.
func (h *CheckoutHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("could not read request body"), h.logger)
		return
	}

	ack, err := h.webhooks.Handle(r.Context(), payload, r.Header.Get(SignatureHeader))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ack)
}
