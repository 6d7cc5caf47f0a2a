package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"incidentTrust/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, h.log(r), err)
}

func (h *Handler) fail(w http.ResponseWriter, status int, code, msg string) {
	render.Fail(w, h.logger, status, code, msg)
}

func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.fail(w, http.StatusBadRequest, "validation_failed", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	render.JSON(w, h.logger, code, v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
