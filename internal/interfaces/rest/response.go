// Package rest maps service results and classified errors to HTTP
// responses. Response shapes mirror the storefront frontend's contract:
// plain JSON success payloads and {"error": message} failures.
package rest

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON failure envelope on every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteCSV writes a CSV document framed as a file attachment.
func WriteCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
