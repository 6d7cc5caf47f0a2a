package service

import (
	"context"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"

	"github.com/google/uuid"
)

type publicIncidentService struct {
	store IncidentStore
	opts  Options
}

func NewPublicIncidentService(store IncidentStore, opts Options) IncidentService {
	opts = opts.withDefaults()
	return &publicIncidentService{
		store: store,
		opts:  opts,
	}
}

// CreateIncident validates the draft, looks up duplicate candidates of the
// same type around the location and commits the new incident. Candidates are
// returned for the caller to act on; nothing is marked here.
func (s *publicIncidentService) CreateIncident(ctx context.Context, req domain.CreateIncidentRequest, reporter domain.VoterIdentity) (*domain.Incident, []domain.NearbyIncident, error) {
	const op = "service.Incident.Create"
	l := s.opts.Logger.With(slog.String("op", op), slog.String("reporter", reporter.Key()))

	now := s.opts.Now()
	inc, err := domain.NewIncident(req, reporter, now)
	if err != nil {
		l.Warn("invalid incident draft", slog.Any("error", err))
		return nil, nil, err
	}
	inc.VerificationScore = domain.Score(inc, *s.opts.Policy, now)

	candidates, err := s.FindNearby(ctx, domain.NearbyQuery{
		Point:        inc.Location,
		RadiusMeters: s.opts.DuplicateRadiusMeters,
		Type:         inc.Type,
	})
	if err != nil {
		l.Error("duplicate lookup failed", slog.Any("error", err))
		return nil, nil, err
	}

	if _, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Insert(ctx, inc)
	}); err != nil {
		l.Error("insert failed", slog.Any("error", err))
		return nil, nil, err
	}

	l.Info("incident created",
		slog.String("id", inc.ID.String()),
		slog.String("type", string(inc.Type)),
		slog.Int("score", inc.VerificationScore),
		slog.Int("duplicate_candidates", len(candidates)),
	)
	s.opts.Auditor.Emit(ctx, domain.AuditEvent{
		Action:     domain.AuditIncidentCreated,
		IncidentID: inc.ID,
		Actor:      reporter,
		To:         domain.StatusReported,
		At:         now,
	})

	return inc, candidates, nil
}

func (s *publicIncidentService) GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "service.Incident.Get"
	return retryRead(ctx, s.opts, op, func(ctx context.Context) (*domain.Incident, error) {
		return s.store.Get(ctx, id)
	})
}

func (s *publicIncidentService) FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error) {
	const op = "service.Incident.FindNearby"

	if err := q.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	found, err := retryRead(ctx, s.opts, op, func(ctx context.Context) ([]domain.NearbyIncident, error) {
		return s.store.FindNearby(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.Nearby(started, len(found))

	s.opts.Logger.Debug("nearby lookup done",
		slog.Float64("lat", q.Point.Lat),
		slog.Float64("lng", q.Point.Lng),
		slog.Float64("radius_m", q.RadiusMeters),
		slog.Int("found", len(found)),
	)
	if found == nil {
		found = []domain.NearbyIncident{}
	}
	return found, nil
}
