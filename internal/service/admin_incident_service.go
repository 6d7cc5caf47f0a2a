package service

import (
	"context"
	"errors"
	"log/slog"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

// AdminService drives the review workflow of officials.
type AdminService struct {
	store  IncidentStore
	scores scoreKeeper
	opts   Options
}

func NewAdminIncidentService(store IncidentStore, opts Options) *AdminService {
	opts = opts.withDefaults()
	return &AdminService{
		store:  store,
		scores: scoreKeeper{store: store, opts: opts},
		opts:   opts,
	}
}

// TransitionStatus moves an incident along the workflow graph. The write is
// conditional on the status read here; if another transition commits first
// the caller gets a stale-state transition error, whatever the arrival order.
func (s *AdminService) TransitionStatus(ctx context.Context, id uuid.UUID, req domain.TransitionRequest, actor domain.VoterIdentity) (*domain.Incident, error) {
	const op = "service.Admin.TransitionStatus"
	l := s.opts.Logger.With(
		slog.String("op", op),
		slog.String("id", id.String()),
		slog.String("to", string(req.Status)),
		slog.String("actor", actor.Key()),
	)

	cur, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Incident, error) {
		return s.store.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if req.Status == domain.StatusDuplicate && req.DuplicateOf != nil && *req.DuplicateOf != cur.ID {
		target, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Incident, error) {
			return s.store.Get(ctx, *req.DuplicateOf)
		})
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return nil, e.Validation("duplicate target %s does not exist", *req.DuplicateOf)
			}
			return nil, err
		}
		if err := domain.CheckDuplicateTarget(cur, target); err != nil {
			return nil, err
		}
	}

	now := s.opts.Now()
	next, err := cur.Transition(req.Status, actor, req.Reason, domain.TransitionOptions{
		DuplicateOf: req.DuplicateOf,
		AssignedTo:  req.AssignedTo,
	}, now)
	if err != nil {
		s.opts.Metrics.Transition(string(cur.Status), string(req.Status), "rejected")
		l.Warn("transition rejected", slog.String("from", string(cur.Status)), slog.Any("error", err))
		return nil, err
	}

	_, err = call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.CompareAndSwapStatus(ctx, cur.Status, next)
	})
	if err != nil {
		if errors.Is(err, e.ErrConcurrencyConflict) {
			s.opts.Metrics.Transition(string(cur.Status), string(req.Status), "stale")
			l.Warn("transition lost race", slog.String("from", string(cur.Status)))
			return nil, e.StaleState("incident %s is no longer %s", id, cur.Status)
		}
		s.opts.Metrics.Transition(string(cur.Status), string(req.Status), "error")
		l.Error("transition write failed", slog.Any("error", err))
		return nil, err
	}
	s.opts.Metrics.Transition(string(cur.Status), string(req.Status), "ok")
	l.Info("status changed", slog.String("from", string(cur.Status)))

	s.opts.Auditor.Emit(ctx, domain.AuditEvent{
		Action:     domain.AuditStatusChanged,
		IncidentID: id,
		Actor:      actor,
		From:       cur.Status,
		To:         next.Status,
		Reason:     req.Reason,
		At:         now,
	})

	if !domain.AffectsScore(cur.Status, next.Status) {
		return next, nil
	}
	refreshed, err := s.scores.refresh(ctx, next)
	if err != nil {
		// the transition is committed; a failed recompute is repaired by RecomputeScore
		l.Error("score refresh after transition failed", slog.Any("error", err))
		return next, nil
	}
	return refreshed, nil
}

func (s *AdminService) RecomputeScore(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "service.Admin.RecomputeScore"

	inc, err := retryRead(ctx, s.opts, op, func(ctx context.Context) (*domain.Incident, error) {
		return s.store.Get(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	inc, err = s.scores.refresh(ctx, inc)
	if err != nil {
		s.opts.Logger.Error("recompute score failed", slog.String("op", op), slog.Any("error", err))
		return 0, err
	}
	return inc.VerificationScore, nil
}

func (s *AdminService) ListIncidents(ctx context.Context, req domain.ListIncidentsRequest) (*domain.ListIncidentsResponse, error) {
	const op = "service.Admin.ListIncidents"

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, e.Validation("unknown status %q", req.Status)
	}

	type page struct {
		items []*domain.Incident
		total int64
	}
	res, err := retryRead(ctx, s.opts, op, func(ctx context.Context) (page, error) {
		items, total, err := s.store.List(ctx, req.Page, req.Limit, req.Status)
		return page{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}
	if res.items == nil {
		res.items = []*domain.Incident{}
	}
	return &domain.ListIncidentsResponse{
		Incidents: res.items,
		Page:      req.Page,
		Limit:     req.Limit,
		Total:     res.total,
	}, nil
}
