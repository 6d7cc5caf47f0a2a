package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddUpvote inserts the vote and bumps the counter in one statement. The
// primary key on incident_upvotes decides between concurrent duplicates.
func (p *IncidentRepo) AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "postgres.Incident.AddUpvote"

	const query = `
		WITH ins AS (
			INSERT INTO incident_upvotes (incident_id, voter_kind, voter_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING
			RETURNING incident_id
		)
		UPDATE incidents
		SET upvote_count = upvote_count + 1,
		    updated_at   = $4
		WHERE id = (SELECT incident_id FROM ins)
		RETURNING id
	`

	var got uuid.UUID
	err := p.pool.QueryRow(ctx, query, id, voter.Kind, voter.ID, at.UTC()).Scan(&got)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, e.DuplicateVote("voter already upvoted this incident"))
	}
	if err != nil {
		// a missing incident surfaces as a foreign key violation
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return p.Get(ctx, id)
}

func (p *IncidentRepo) RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "postgres.Incident.RemoveUpvote"

	const query = `
		WITH del AS (
			DELETE FROM incident_upvotes
			WHERE incident_id = $1 AND voter_kind = $2 AND voter_id = $3
			RETURNING incident_id
		)
		UPDATE incidents
		SET upvote_count = upvote_count - 1,
		    updated_at   = $4
		WHERE id = (SELECT incident_id FROM del)
		RETURNING id
	`

	var got uuid.UUID
	err := p.pool.QueryRow(ctx, query, id, voter.Kind, voter.ID, at.UTC()).Scan(&got)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("voter %s has not upvoted incident %s", voter.Key(), id))
	}
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return p.Get(ctx, id)
}
