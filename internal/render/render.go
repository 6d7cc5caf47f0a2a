// Package render writes JSON responses and maps domain errors onto HTTP
// statuses for both handlers and middleware.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"incidentTrust/pkg/e"
)

type ErrorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

// StatusFor maps an error kind to the status clients see.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrTransition),
		errors.Is(err, e.ErrDuplicateVote),
		errors.Is(err, e.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, e.ErrLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, e.ErrInfrastructure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error renders err with its stable code. Server-side failures are logged at
// error level and their details are not echoed to the client.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	code, reason, hint := e.Describe(err)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("code", code),
		slog.Any("error", err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		reason = http.StatusText(status)
		if status == http.StatusServiceUnavailable {
			reason = "temporary failure"
		}
	} else {
		logger.Info("request rejected", attrs...)
	}

	JSON(w, logger, status, ErrorBody{Code: code, Error: reason, Hint: hint})
}

// Fail renders a plain request error that never reached the service layer.
func Fail(w http.ResponseWriter, logger *slog.Logger, status int, code, msg string) {
	JSON(w, logger, status, ErrorBody{Code: code, Error: msg})
}
