package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

func (p *IncidentRepo) Insert(ctx context.Context, inc *domain.Incident) error {
	const op = "postgres.Incident.Insert"

	history, err := jsonList(inc.StatusHistory)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("status history: %v", err))
	}
	media, err := jsonList(inc.Media)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("media: %v", err))
	}
	related, err := jsonList(inc.RelatedIncidents)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("related incidents: %v", err))
	}
	assigned, err := jsonOptional(inc.AssignedTo)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("assigned_to: %v", err))
	}

	const query = `
		INSERT INTO incidents (
			id, title, description, type, severity, status, status_history,
			geo_point, media, upvote_count, verification_score,
			reporter_kind, reporter_id, assigned_to, duplicate_of, related_incidents,
			verified_at, assigned_at, resolved_at, closed_at, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			ST_SetSRID(ST_MakePoint($8, $9), 4326)::geography, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23
		)
	`

	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			inc.ID, inc.Title, inc.Description, inc.Type, inc.Severity, inc.Status, history,
			inc.Location.Lng, inc.Location.Lat, media, len(inc.Upvotes), inc.VerificationScore,
			inc.Reporter.Kind, inc.Reporter.ID, assigned, inc.DuplicateOf, related,
			inc.VerifiedAt, inc.AssignedAt, inc.ResolvedAt, inc.ClosedAt, inc.CreatedAt, inc.UpdatedAt,
		); err != nil {
			return err
		}
		for _, v := range inc.Upvotes {
			if _, err := tx.Exec(ctx,
				`INSERT INTO incident_upvotes (incident_id, voter_kind, voter_id, created_at) VALUES ($1, $2, $3, $4)`,
				inc.ID, v.Kind, v.ID, inc.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (p *IncidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	query := `SELECT ` + incidentColumns + ` FROM incidents i WHERE i.id = $1`

	inc, err := scanIncident(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
		}
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return inc, nil
}

func (p *IncidentRepo) List(ctx context.Context, page, limit int, status domain.IncidentStatus) ([]*domain.Incident, int64, error) {
	const op = "postgres.Incident.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const countQuery = `SELECT COUNT(*) FROM incidents WHERE ($1::text = '' OR status = $1::text)`

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, string(status)).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	listQuery := `
		SELECT ` + incidentColumns + `
		FROM incidents i
		WHERE ($1::text = '' OR i.status = $1::text)
		ORDER BY i.created_at DESC, i.id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.pool.Query(ctx, listQuery, string(status), limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents := make([]*domain.Incident, 0, limit)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return incidents, total, nil
}

func (p *IncidentRepo) CompareAndSwapStatus(ctx context.Context, expected domain.IncidentStatus, next *domain.Incident) error {
	const op = "postgres.Incident.CompareAndSwapStatus"

	if next == nil || len(next.StatusHistory) == 0 {
		return fmt.Errorf("%s: %w", op, e.Validation("next state without history"))
	}
	entry, err := jsonList(next.StatusHistory[len(next.StatusHistory)-1:])
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("status entry: %v", err))
	}
	assigned, err := jsonOptional(next.AssignedTo)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.Validation("assigned_to: %v", err))
	}

	// History is appended in place so entries written by others are kept.
	const query = `
		UPDATE incidents
		SET status         = $3,
		    status_history = status_history || $4::jsonb,
		    assigned_to    = $5,
		    duplicate_of   = $6,
		    verified_at    = $7,
		    assigned_at    = $8,
		    resolved_at    = $9,
		    closed_at      = $10,
		    updated_at     = $11
		WHERE id = $1 AND status = $2
	`

	cmd, err := p.pool.Exec(ctx, query,
		next.ID, expected, next.Status, entry, assigned, next.DuplicateOf,
		next.VerifiedAt, next.AssignedAt, next.ResolvedAt, next.ClosedAt, next.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	return p.missOrConflict(ctx, op, next.ID, "status is no longer %s", expected)
}

func (p *IncidentRepo) UpdateScoreIf(ctx context.Context, id uuid.UUID, score, upvoteCount int) error {
	const op = "postgres.Incident.UpdateScoreIf"

	if score < domain.MinScore || score > domain.MaxScore {
		return fmt.Errorf("%s: %w", op, e.Validation("score %d out of range", score))
	}

	const query = `
		UPDATE incidents
		SET verification_score = $2
		WHERE id = $1 AND upvote_count = $3
	`

	cmd, err := p.pool.Exec(ctx, query, id, score, upvoteCount)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	return p.missOrConflict(ctx, op, id, "upvote count is no longer %d", upvoteCount)
}

// missOrConflict classifies a conditional write that matched no row.
func (p *IncidentRepo) missOrConflict(ctx context.Context, op string, id uuid.UUID, format string, args ...any) error {
	ok, err := incidentExists(ctx, p.pool, id)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	return fmt.Errorf("%s: %w", op, e.Conflict(format, args...))
}
