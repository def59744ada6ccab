package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body of every failed API call.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Short error message
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
