package system

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"incidentTrust/internal/render"
)

// Check reports whether a backing dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	logger  *slog.Logger
	checks  map[string]Check
	timeout time.Duration
}

func NewHandler(logger *slog.Logger, checks map[string]Check) *Handler {
	return &Handler{logger: logger, checks: checks, timeout: 2 * time.Second}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readiness runs every registered check and answers 503 if any fails.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	report := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("readiness check failed", slog.String("check", name), slog.String("error", err.Error()))
			report[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}

	render.JSON(w, h.logger, status, map[string]any{"checks": report})
}
