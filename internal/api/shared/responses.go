// Package shared contains helpers used across all API handlers and
// middleware: the error envelope, JSON response writers, request decoding,
// and request-scoped identity.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/microcourses/api/internal/platform/logger"
)

// Machine-readable error codes carried in every error envelope. Clients
// branch on the code; the message is for humans only.
const (
	CodeFieldRequired = "FIELD_REQUIRED"
	CodeInvalid       = "INVALID"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeRateLimit     = "RATE_LIMIT"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorBody is the inner object of the uniform error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Error("failed to encode response",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
	}
}

// RespondWithError writes the uniform error envelope with the given status,
// code, and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondWithFieldError writes the uniform error envelope for a validation
// failure tied to a specific request field.
func RespondWithFieldError(w http.ResponseWriter, r *http.Request, status int, code, message, field string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Field: field}})
}
