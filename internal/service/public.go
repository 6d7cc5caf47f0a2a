package service

import (
	"context"

	"incidentTrust/internal/domain"

	"github.com/google/uuid"
)

func (s *Service) CreateIncident(ctx context.Context, req domain.CreateIncidentRequest, reporter domain.VoterIdentity) (*domain.Incident, []domain.NearbyIncident, error) {
	return s.IncidentService.CreateIncident(ctx, req, reporter)
}

func (s *Service) GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return s.IncidentService.GetIncident(ctx, id)
}

func (s *Service) FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error) {
	return s.IncidentService.FindNearby(ctx, q)
}

func (s *Service) AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error) {
	return s.UpvoteService.AddUpvote(ctx, id, voter)
}

func (s *Service) RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error) {
	return s.UpvoteService.RemoveUpvote(ctx, id, voter)
}
