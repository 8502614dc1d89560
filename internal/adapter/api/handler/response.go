package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the failure envelope of the /api/zid endpoint.
type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// WriteJSON encodes v as JSON and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"ok":false,"error":msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorResponse{OK: false, Error: msg})
}
