package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest"
)

// HandleGenerateCSV streams nothing: the caller's order history is small
// enough to buffer whole, and comes back as a dated CSV attachment.
func (h *CheckoutHandler) HandleGenerateCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.exports.Export(r.Context(), bearerToken(r))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteCSV(w, result.Filename, result.Data)
}
