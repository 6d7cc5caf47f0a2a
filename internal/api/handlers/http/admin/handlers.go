package admin

import (
	"context"
	"log/slog"
	"net/http"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Workflow interface {
	TransitionStatus(ctx context.Context, id uuid.UUID, req domain.TransitionRequest, actor domain.VoterIdentity) (*domain.Incident, error)
	RecomputeScore(ctx context.Context, id uuid.UUID) (int, error)
	ListIncidents(ctx context.Context, req domain.ListIncidentsRequest) (*domain.ListIncidentsResponse, error)
}

type GuestGrants interface {
	GrantGuestActions(ctx context.Context, id string, n int) (*domain.Guest, error)
}

type Handler struct {
	logger   *slog.Logger
	Workflow Workflow
	Guests   GuestGrants
}

func NewHandler(logger *slog.Logger, workflow Workflow, guests GuestGrants) *Handler {
	return &Handler{
		logger:   logger,
		Workflow: workflow,
		Guests:   guests,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) TransitionIncident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("TransitionIncident", slog.String("remote", r.RemoteAddr))

	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}
	actor, ok := middleware.VoterFromContext(r.Context())
	if !ok {
		h.fail(w, http.StatusUnauthorized, "unauthenticated", "voter identity required")
		return
	}

	var req domain.TransitionRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	inc, err := h.Workflow.TransitionStatus(r.Context(), id, req, actor)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident transitioned",
		slog.String("id", inc.ID.String()),
		slog.String("status", string(inc.Status)),
		slog.String("actor", actor.Key()),
	)
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) RecomputeScore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	score, err := h.Workflow.RecomputeScore(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":                 id,
		"verification_score": score,
	})
}

func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ListIncidents", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}

	resp, err := h.Workflow.ListIncidents(r.Context(), domain.ListIncidentsRequest{
		Page:   page,
		Limit:  limit,
		Status: domain.IncidentStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incidents listed", slog.Int("count", len(resp.Incidents)), slog.Int64("total", resp.Total))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GrantGuestActions(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	guestID := chi.URLParam(r, "id")

	var req domain.GrantActionsRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	g, err := h.Guests.GrantGuestActions(r.Context(), guestID, req.Actions)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("guest actions granted", slog.String("guest_id", guestID), slog.Int("actions", req.Actions))
	h.writeJSON(w, http.StatusOK, g.Quota())
}
