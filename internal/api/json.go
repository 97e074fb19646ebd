package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

// writeJSON encodes v as the response body. Encoding failures can only be
// logged since the status line is already out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api: json encode failed", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResponse{Error: msg})
}
