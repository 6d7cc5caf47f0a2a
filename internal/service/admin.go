package service

import (
	"context"

	"incidentTrust/internal/domain"

	"github.com/google/uuid"
)

func (s *Service) TransitionStatus(ctx context.Context, id uuid.UUID, req domain.TransitionRequest, actor domain.VoterIdentity) (*domain.Incident, error) {
	return s.WorkflowService.TransitionStatus(ctx, id, req, actor)
}

func (s *Service) RecomputeScore(ctx context.Context, id uuid.UUID) (int, error) {
	return s.WorkflowService.RecomputeScore(ctx, id)
}

func (s *Service) ListIncidents(ctx context.Context, req domain.ListIncidentsRequest) (*domain.ListIncidentsResponse, error) {
	return s.WorkflowService.ListIncidents(ctx, req)
}
