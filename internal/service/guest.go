package service

import (
	"context"

	"incidentTrust/internal/domain"
)

func (s *Service) RegisterGuest(ctx context.Context) (*domain.Guest, error) {
	return s.GuestService.RegisterGuest(ctx)
}

func (s *Service) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	return s.GuestService.GetGuest(ctx, id)
}

func (s *Service) TryConsumeGuestAction(ctx context.Context, id string) (*domain.Guest, error) {
	return s.GuestService.TryConsumeGuestAction(ctx, id)
}

func (s *Service) GrantGuestActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	return s.GuestService.GrantGuestActions(ctx, id, n)
}
