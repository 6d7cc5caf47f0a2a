package public

import (
	"log/slog"
	"net/http"
	"strconv"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/middleware"
	"incidentTrust/internal/render"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, h.log(r), err)
}

func (h *Handler) fail(w http.ResponseWriter, status int, msg string) {
	render.Fail(w, h.logger, status, "validation_failed", msg)
}

func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr))
		h.fail(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) voter(w http.ResponseWriter, r *http.Request) (domain.VoterIdentity, bool) {
	v, ok := middleware.VoterFromContext(r.Context())
	if !ok {
		render.Fail(w, h.logger, http.StatusUnauthorized, "unauthenticated", "voter identity required")
	}
	return v, ok
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

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	render.JSON(w, h.logger, code, v)
}
