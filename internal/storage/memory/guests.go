package memory

import (
	"context"
	"fmt"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"
)

func (s *Store) CreateGuest(ctx context.Context, g *domain.Guest) error {
	const op = "memory.Guest.Create"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	if g == nil || g.ID == "" || g.MaxActions <= 0 || g.ActionCount < 0 || g.ActionCount > g.MaxActions {
		return fmt.Errorf("%s: %w", op, e.Validation("malformed guest"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.guests[g.ID]; exists {
		return fmt.Errorf("%s: %w", op, e.Conflict("guest %s already exists", g.ID))
	}
	c := *g
	s.guests[g.ID] = &c
	return nil
}

func (s *Store) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "memory.Guest.Get"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	c := *g
	return &c, nil
}

func (s *Store) IncrementActionIf(ctx context.Context, id string, now time.Time) (*domain.Guest, error) {
	const op = "memory.Guest.IncrementActionIf"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	if g.Expired(now) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest session %s expired", id))
	}
	if g.ActionCount >= g.MaxActions {
		return nil, fmt.Errorf("%s: %w", op, e.LimitExceeded("guest action quota exhausted"))
	}
	g.ActionCount++
	g.LastActiveAt = now.UTC()
	c := *g
	return &c, nil
}

func (s *Store) GrantActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	const op = "memory.Guest.GrantActions"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.Validation("granted actions must be positive"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	g.MaxActions += n
	c := *g
	return &c, nil
}
