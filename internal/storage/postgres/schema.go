package postgres

import (
	"context"
	"log/slog"

	"incidentTrust/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is idempotent; Migrate may run on every start.
const Schema = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS incidents (
	id                 uuid PRIMARY KEY,
	title              text NOT NULL,
	description        text NOT NULL DEFAULT '',
	type               text NOT NULL,
	severity           text NOT NULL,
	status             text NOT NULL,
	status_history     jsonb NOT NULL,
	geo_point          geography(Point, 4326) NOT NULL,
	media              jsonb NOT NULL DEFAULT '[]',
	upvote_count       integer NOT NULL DEFAULT 0 CHECK (upvote_count >= 0),
	verification_score integer NOT NULL DEFAULT 0 CHECK (verification_score BETWEEN 0 AND 100),
	reporter_kind      text NOT NULL,
	reporter_id        text NOT NULL,
	assigned_to        jsonb,
	duplicate_of       uuid,
	related_incidents  jsonb NOT NULL DEFAULT '[]',
	verified_at        timestamptz,
	assigned_at        timestamptz,
	resolved_at        timestamptz,
	closed_at          timestamptz,
	created_at         timestamptz NOT NULL,
	updated_at         timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS incidents_geo_point_idx ON incidents USING GIST (geo_point);
CREATE INDEX IF NOT EXISTS incidents_status_created_idx ON incidents (status, created_at DESC);

CREATE TABLE IF NOT EXISTS incident_upvotes (
	incident_id uuid NOT NULL REFERENCES incidents (id) ON DELETE CASCADE,
	voter_kind  text NOT NULL,
	voter_id    text NOT NULL,
	created_at  timestamptz NOT NULL,
	PRIMARY KEY (incident_id, voter_kind, voter_id)
);

CREATE TABLE IF NOT EXISTS guests (
	id             text PRIMARY KEY,
	action_count   integer NOT NULL CHECK (action_count >= 0),
	max_actions    integer NOT NULL CHECK (max_actions > 0),
	last_active_at timestamptz NOT NULL,
	expires_at     timestamptz NOT NULL,
	created_at     timestamptz NOT NULL,
	CHECK (action_count <= max_actions)
);

CREATE INDEX IF NOT EXISTS guests_expires_at_idx ON guests (expires_at);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	const op = "postgres.Migrate"

	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error("schema migration failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	logger.Info("Postgres schema is up to date")
	return nil
}
