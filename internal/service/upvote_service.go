package service

import (
	"context"
	"errors"
	"log/slog"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

type upvoteService struct {
	store  IncidentStore
	scores scoreKeeper
	opts   Options
}

func NewUpvoteService(store IncidentStore, opts Options) UpvoteService {
	opts = opts.withDefaults()
	return &upvoteService{
		store:  store,
		scores: scoreKeeper{store: store, opts: opts},
		opts:   opts,
	}
}

// AddUpvote records one endorsement per voter. Uniqueness is enforced by the
// store's unique insert, so two racing requests from the same voter end with
// exactly one success and one duplicate-vote error.
func (s *upvoteService) AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error) {
	const op = "service.Upvote.Add"

	if err := voter.Validate(); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	inc, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Incident, error) {
		return s.store.AddUpvote(ctx, id, voter, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, e.ErrDuplicateVote):
			s.opts.Metrics.Upvote("add", "duplicate")
			return nil, e.DuplicateVote("voter already upvoted this incident")
		case errors.Is(err, e.ErrNotFound):
			s.opts.Metrics.Upvote("add", "not_found")
			return nil, e.NotFound("incident %s", id)
		default:
			s.opts.Metrics.Upvote("add", "error")
			s.opts.Logger.Error("upvote write failed", slog.String("op", op), slog.Any("error", err))
			return nil, err
		}
	}
	s.opts.Metrics.Upvote("add", "ok")

	s.opts.Auditor.Emit(ctx, domain.AuditEvent{
		Action:     domain.AuditUpvoteAdded,
		IncidentID: id,
		Actor:      voter,
		At:         now,
	})

	return s.rescore(ctx, op, inc), nil
}

func (s *upvoteService) RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error) {
	const op = "service.Upvote.Remove"

	if err := voter.Validate(); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	inc, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Incident, error) {
		return s.store.RemoveUpvote(ctx, id, voter, now)
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			s.opts.Metrics.Upvote("remove", "not_found")
			return nil, err
		}
		s.opts.Metrics.Upvote("remove", "error")
		s.opts.Logger.Error("upvote delete failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}
	s.opts.Metrics.Upvote("remove", "ok")

	s.opts.Auditor.Emit(ctx, domain.AuditEvent{
		Action:     domain.AuditUpvoteRemoved,
		IncidentID: id,
		Actor:      voter,
		At:         now,
	})

	return s.rescore(ctx, op, inc), nil
}

// rescore refreshes the score after a committed upvote change. The vote is
// already durable, so a failed refresh is logged and the incident returned
// with its previous score.
func (s *upvoteService) rescore(ctx context.Context, op string, inc *domain.Incident) *domain.Incident {
	refreshed, err := s.scores.refresh(ctx, inc)
	if err != nil {
		s.opts.Logger.Error("score refresh failed",
			slog.String("op", op),
			slog.String("id", inc.ID.String()),
			slog.Any("error", err),
		)
		return inc
	}
	return refreshed
}
