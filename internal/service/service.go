package service

import (
	"context"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

// IncidentStore is the atomic store port for incidents. Every mutating
// method is a single conditional write; adapters must never implement them
// as read-then-write sequences.
//
//go:generate mockgen -source=service.go -destination=mocks/mock.go
type IncidentStore interface {
	Insert(ctx context.Context, inc *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	List(ctx context.Context, page, limit int, status domain.IncidentStatus) ([]*domain.Incident, int64, error)

	// CompareAndSwapStatus persists next only if the stored status still
	// equals expected. The adapter appends the last history entry of next;
	// earlier entries are never rewritten. A lost precondition yields
	// e.ErrConcurrencyConflict, a missing incident e.ErrNotFound.
	CompareAndSwapStatus(ctx context.Context, expected domain.IncidentStatus, next *domain.Incident) error

	// AddUpvote inserts voter into the upvote set and bumps the count in the
	// same write. An existing vote yields e.ErrDuplicateVote.
	AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error)
	// RemoveUpvote deletes voter if present; absence yields e.ErrNotFound.
	RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error)

	// UpdateScoreIf writes score only while the stored upvote count still
	// equals upvoteCount, otherwise e.ErrConcurrencyConflict.
	UpdateScoreIf(ctx context.Context, id uuid.UUID, score, upvoteCount int) error

	FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error)
}

// GuestStore is the atomic store port for guest quotas.
type GuestStore interface {
	CreateGuest(ctx context.Context, g *domain.Guest) error
	GetGuest(ctx context.Context, id string) (*domain.Guest, error)
	// IncrementActionIf increments the action count by one only if it is
	// below the guest's max and the guest has not expired, in one round trip.
	// A full quota yields e.ErrLimitExceeded.
	IncrementActionIf(ctx context.Context, id string, now time.Time) (*domain.Guest, error)
	// GrantActions raises max actions by n.
	GrantActions(ctx context.Context, id string, n int) (*domain.Guest, error)
}

// AuditHook receives lifecycle events. Failures are logged, never propagated.
type AuditHook interface {
	Record(ctx context.Context, ev domain.AuditEvent) error
}

// Публичные use-case'ы
type IncidentService interface {
	CreateIncident(ctx context.Context, req domain.CreateIncidentRequest, reporter domain.VoterIdentity) (*domain.Incident, []domain.NearbyIncident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error)
}

type WorkflowService interface {
	TransitionStatus(ctx context.Context, id uuid.UUID, req domain.TransitionRequest, actor domain.VoterIdentity) (*domain.Incident, error)
	RecomputeScore(ctx context.Context, id uuid.UUID) (int, error)
	ListIncidents(ctx context.Context, req domain.ListIncidentsRequest) (*domain.ListIncidentsResponse, error)
}

type UpvoteService interface {
	AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error)
	RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity) (*domain.Incident, error)
}

type GuestService interface {
	RegisterGuest(ctx context.Context) (*domain.Guest, error)
	GetGuest(ctx context.Context, id string) (*domain.Guest, error)
	TryConsumeGuestAction(ctx context.Context, id string) (*domain.Guest, error)
	GrantGuestActions(ctx context.Context, id string, n int) (*domain.Guest, error)
}

type Service struct {
	IncidentService IncidentService
	WorkflowService WorkflowService
	UpvoteService   UpvoteService
	GuestService    GuestService
}

func NewService(
	incidentService IncidentService,
	workflowService WorkflowService,
	upvoteService UpvoteService,
	guestService GuestService,
) *Service {
	return &Service{
		IncidentService: incidentService,
		WorkflowService: workflowService,
		UpvoteService:   upvoteService,
		GuestService:    guestService,
	}
}

// New validates opts and builds every service over the given stores.
func New(incidents IncidentStore, guests GuestStore, opts Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, e.Wrap("service.New", err)
	}
	return NewService(
		NewPublicIncidentService(incidents, opts),
		NewAdminIncidentService(incidents, opts),
		NewUpvoteService(incidents, opts),
		NewGuestService(guests, opts),
	), nil
}
