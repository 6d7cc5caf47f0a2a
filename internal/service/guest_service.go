package service

import (
	"context"
	"errors"
	"log/slog"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"
)

type guestService struct {
	store GuestStore
	opts  Options
}

func NewGuestService(store GuestStore, opts Options) GuestService {
	return &guestService{store: store, opts: opts.withDefaults()}
}

func (s *guestService) RegisterGuest(ctx context.Context) (*domain.Guest, error) {
	const op = "service.Guest.Register"

	g, err := domain.NewGuest(s.opts.GuestMaxActions, s.opts.GuestTTL, s.opts.Now())
	if err != nil {
		return nil, err
	}
	if _, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.CreateGuest(ctx, g)
	}); err != nil {
		s.opts.Logger.Error("guest create failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}
	s.opts.Logger.Info("guest registered", slog.String("guest_id", g.ID), slog.Int("max_actions", g.MaxActions))
	return g, nil
}

func (s *guestService) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "service.Guest.Get"
	if id == "" {
		return nil, e.Validation("guest id is empty")
	}
	return retryRead(ctx, s.opts, op, func(ctx context.Context) (*domain.Guest, error) {
		return s.store.GetGuest(ctx, id)
	})
}

// TryConsumeGuestAction spends one unit of the guest's quota. With k units
// left and N >= k concurrent callers exactly k succeed; the store performs
// the check and the increment as one conditional write.
func (s *guestService) TryConsumeGuestAction(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "service.Guest.TryConsumeAction"
	if id == "" {
		return nil, e.Validation("guest id is empty")
	}

	g, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Guest, error) {
		return s.store.IncrementActionIf(ctx, id, s.opts.Now())
	})
	if err != nil {
		switch {
		case errors.Is(err, e.ErrLimitExceeded):
			s.opts.Metrics.GuestAction("limit_exceeded")
			s.opts.Logger.Info("guest quota exhausted", slog.String("guest_id", id))
			return nil, e.LimitExceeded("guest action quota exhausted")
		case errors.Is(err, e.ErrNotFound):
			s.opts.Metrics.GuestAction("not_found")
			return nil, err
		default:
			s.opts.Metrics.GuestAction("error")
			s.opts.Logger.Error("guest quota write failed", slog.String("op", op), slog.Any("error", err))
			return nil, err
		}
	}
	s.opts.Metrics.GuestAction("ok")
	return g, nil
}

func (s *guestService) GrantGuestActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	const op = "service.Guest.GrantActions"
	if id == "" {
		return nil, e.Validation("guest id is empty")
	}
	if n <= 0 {
		return nil, e.Validation("granted actions must be positive")
	}
	g, err := call(ctx, s.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Guest, error) {
		return s.store.GrantActions(ctx, id, n)
	})
	if err != nil {
		return nil, err
	}
	s.opts.Logger.Info("guest quota raised", slog.String("guest_id", id), slog.Int("max_actions", g.MaxActions))
	return g, nil
}
