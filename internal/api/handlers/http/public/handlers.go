package public

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/middleware"
	"incidentTrust/pkg/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Incidents interface {
	CreateIncident(ctx context.Context, req domain.CreateIncidentRequest, reporter domain.VoterIdentity) (*domain.Incident, []domain.NearbyIncident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error)
}

type Upvotes interface {
	AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error)
	RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error)
}

type Guests interface {
	RegisterGuest(ctx context.Context) (*domain.Guest, error)
	GetGuest(ctx context.Context, id string) (*domain.Guest, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents Incidents
	Upvotes   Upvotes
	Guests    Guests
}

func NewHandler(logger *slog.Logger, incidents Incidents, upvotes Upvotes, guests Guests) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
		Upvotes:   upvotes,
		Guests:    guests,
	}
}

func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	reporter, ok := h.voter(w, r)
	if !ok {
		return
	}

	var req domain.CreateIncidentRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	inc, candidates, err := h.Incidents.CreateIncident(r.Context(), req, reporter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident reported",
		slog.String("id", inc.ID.String()),
		slog.String("type", string(inc.Type)),
		slog.Int("duplicate_candidates", len(candidates)),
	)
	h.writeJSON(w, http.StatusCreated, domain.CreateIncidentResponse{
		Incident:            inc,
		DuplicateCandidates: candidates,
	})
}

func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	inc, err := h.Incidents.GetIncident(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inc)
}

type nearbyParams struct {
	Lat     float64 `json:"lat" validate:"lat"`
	Lng     float64 `json:"lng" validate:"lng"`
	RadiusM float64 `json:"radius_m" validate:"radius_m"`
	Type    string  `json:"type" validate:"omitempty,oneof=fire flood accident medical crime infrastructure natural_disaster other"`
	Limit   int     `json:"limit" validate:"min=0,max=100"`
}

func (h *Handler) NearbyIncidents(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("NearbyIncidents", slog.String("query", r.URL.RawQuery))

	q := r.URL.Query()
	var p nearbyParams
	var err error
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"lat", &p.Lat},
		{"lng", &p.Lng},
		{"radius_m", &p.RadiusM},
	} {
		if *f.dst, err = strconv.ParseFloat(q.Get(f.name), 64); err != nil {
			h.fail(w, http.StatusBadRequest, f.name+" must be a number")
			return
		}
	}
	p.Type = q.Get("type")
	p.Limit = parseInt(q.Get("limit"), 0)

	if err := validator.ValidateStruct(p); err != nil {
		h.handleError(w, r, err)
		return
	}

	matches, err := h.Incidents.FindNearby(r.Context(), domain.NearbyQuery{
		Point:        domain.GeoPoint{Lng: p.Lng, Lat: p.Lat},
		RadiusMeters: p.RadiusM,
		Type:         domain.IncidentType(p.Type),
		Limit:        p.Limit,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"incidents": matches,
		"count":     len(matches),
	})
}

func (h *Handler) AddUpvote(w http.ResponseWriter, r *http.Request) {
	h.upvote(w, r, h.Upvotes.AddUpvote, http.StatusCreated)
}

func (h *Handler) RemoveUpvote(w http.ResponseWriter, r *http.Request) {
	h.upvote(w, r, h.Upvotes.RemoveUpvote, http.StatusOK)
}

func (h *Handler) upvote(
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, uuid.UUID, domain.VoterIdentity) (*domain.Incident, error),
	status int,
) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}
	voter, ok := h.voter(w, r)
	if !ok {
		return
	}

	inc, err := apply(r.Context(), id, voter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, status, map[string]any{
		"id":                 inc.ID,
		"upvote_count":       inc.UpvoteCount,
		"verification_score": inc.VerificationScore,
	})
}

func (h *Handler) RegisterGuest(w http.ResponseWriter, r *http.Request) {
	g, err := h.Guests.RegisterGuest(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.log(r).Info("guest registered", slog.String("guest_id", g.ID))
	h.writeJSON(w, http.StatusCreated, g.Quota())
}

func (h *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	g, err := h.Guests.GetGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, g.Quota())
}
