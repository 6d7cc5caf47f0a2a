package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuestRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewGuestRepo(pool *pgxpool.Pool, logger *slog.Logger) *GuestRepo {
	return &GuestRepo{pool: pool, logger: logger}
}

const guestColumns = `id, action_count, max_actions, last_active_at, expires_at, created_at`

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	if err := row.Scan(&g.ID, &g.ActionCount, &g.MaxActions, &g.LastActiveAt, &g.ExpiresAt, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.LastActiveAt = g.LastActiveAt.UTC()
	g.ExpiresAt = g.ExpiresAt.UTC()
	g.CreatedAt = g.CreatedAt.UTC()
	return &g, nil
}

func (p *GuestRepo) CreateGuest(ctx context.Context, g *domain.Guest) error {
	const op = "postgres.Guest.Create"

	if g == nil || g.ID == "" || g.MaxActions <= 0 || g.ActionCount < 0 || g.ActionCount > g.MaxActions {
		return fmt.Errorf("%s: %w", op, e.Validation("malformed guest"))
	}

	const query = `INSERT INTO guests (` + guestColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := p.pool.Exec(ctx, query,
		g.ID, g.ActionCount, g.MaxActions, g.LastActiveAt, g.ExpiresAt, g.CreatedAt,
	); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (p *GuestRepo) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "postgres.Guest.Get"

	g, err := scanGuest(p.pool.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return g, nil
}

// IncrementActionIf spends one action with a single conditional UPDATE. When
// it matches nothing, a follow-up read only decides which error to report.
func (p *GuestRepo) IncrementActionIf(ctx context.Context, id string, now time.Time) (*domain.Guest, error) {
	const op = "postgres.Guest.IncrementActionIf"

	const query = `
		UPDATE guests
		SET action_count   = action_count + 1,
		    last_active_at = $2
		WHERE id = $1
		  AND expires_at > $2
		  AND action_count < max_actions
		RETURNING ` + guestColumns

	g, err := scanGuest(p.pool.QueryRow(ctx, query, id, now.UTC()))
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	cur, err := p.GetGuest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cur.Expired(now) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest session %s expired", id))
	}
	return nil, fmt.Errorf("%s: %w", op, e.LimitExceeded("guest action quota exhausted"))
}

func (p *GuestRepo) GrantActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	const op = "postgres.Guest.GrantActions"

	if n <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.Validation("granted actions must be positive"))
	}

	const query = `
		UPDATE guests
		SET max_actions = max_actions + $2
		WHERE id = $1
		RETURNING ` + guestColumns

	g, err := scanGuest(p.pool.QueryRow(ctx, query, id, n))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return g, nil
}
