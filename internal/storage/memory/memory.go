// Package memory is a single-process implementation of the atomic store
// ports. Its mutex gives the same conditional-write semantics as the durable
// adapters within one process only; it backs tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

type Store struct {
	mu        sync.Mutex
	incidents map[uuid.UUID]*domain.Incident
	guests    map[string]*domain.Guest
}

func New() *Store {
	return &Store{
		incidents: make(map[uuid.UUID]*domain.Incident),
		guests:    make(map[string]*domain.Guest),
	}
}

func (s *Store) Insert(ctx context.Context, inc *domain.Incident) error {
	const op = "memory.Incident.Insert"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	if inc == nil || inc.ID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.Validation("incident without id"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.incidents[inc.ID]; exists {
		return fmt.Errorf("%s: %w", op, e.Conflict("incident %s already exists", inc.ID))
	}
	s.incidents[inc.ID] = inc.Clone()
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "memory.Incident.Get"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	return inc.Clone(), nil
}

func (s *Store) List(ctx context.Context, page, limit int, status domain.IncidentStatus) ([]*domain.Incident, int64, error) {
	const op = "memory.Incident.List"
	if err := ctx.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	s.mu.Lock()
	all := make([]*domain.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		if status == "" || inc.Status == status {
			all = append(all, inc.Clone())
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	total := int64(len(all))
	from := (page - 1) * limit
	if from >= len(all) {
		return []*domain.Incident{}, total, nil
	}
	to := min(from+limit, len(all))
	return all[from:to], total, nil
}

func (s *Store) CompareAndSwapStatus(ctx context.Context, expected domain.IncidentStatus, next *domain.Incident) error {
	const op = "memory.Incident.CompareAndSwapStatus"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	if next == nil || len(next.StatusHistory) == 0 {
		return fmt.Errorf("%s: %w", op, e.Validation("next state without history"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.incidents[next.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, e.NotFound("incident %s", next.ID))
	}
	if cur.Status != expected {
		return fmt.Errorf("%s: %w", op, e.Conflict("status is %s, expected %s", cur.Status, expected))
	}

	upd := cur.Clone()
	upd.Status = next.Status
	upd.StatusHistory = append(upd.StatusHistory, next.StatusHistory[len(next.StatusHistory)-1])
	upd.DuplicateOf = next.DuplicateOf
	upd.AssignedTo = next.AssignedTo
	upd.VerifiedAt = next.VerifiedAt
	upd.AssignedAt = next.AssignedAt
	upd.ResolvedAt = next.ResolvedAt
	upd.ClosedAt = next.ClosedAt
	upd.UpdatedAt = next.UpdatedAt
	s.incidents[next.ID] = upd.Clone()
	return nil
}

func (s *Store) AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "memory.Incident.AddUpvote"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	if inc.HasUpvoted(voter) {
		return nil, fmt.Errorf("%s: %w", op, e.DuplicateVote("voter already upvoted this incident"))
	}
	inc.Upvotes = append(inc.Upvotes, voter)
	inc.UpvoteCount = len(inc.Upvotes)
	inc.UpdatedAt = at.UTC()
	return inc.Clone(), nil
}

func (s *Store) RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "memory.Incident.RemoveUpvote"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	idx := -1
	for i, v := range inc.Upvotes {
		if v.Equal(voter) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("voter %s has not upvoted incident %s", voter.Key(), id))
	}
	inc.Upvotes = append(inc.Upvotes[:idx:idx], inc.Upvotes[idx+1:]...)
	inc.UpvoteCount = len(inc.Upvotes)
	inc.UpdatedAt = at.UTC()
	return inc.Clone(), nil
}

func (s *Store) UpdateScoreIf(ctx context.Context, id uuid.UUID, score, upvoteCount int) error {
	const op = "memory.Incident.UpdateScoreIf"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	if score < domain.MinScore || score > domain.MaxScore {
		return fmt.Errorf("%s: %w", op, e.Validation("score %d out of range", score))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	if inc.UpvoteCount != upvoteCount {
		return fmt.Errorf("%s: %w", op, e.Conflict("upvote count is %d, expected %d", inc.UpvoteCount, upvoteCount))
	}
	inc.VerificationScore = score
	return nil
}

func (s *Store) FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error) {
	const op = "memory.Incident.FindNearby"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	candidates := make([]*domain.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		candidates = append(candidates, inc.Clone())
	}
	s.mu.Unlock()

	return domain.RankNearby(candidates, q), nil
}
