package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"
)

// FindNearby ranks open incidents by spherical distance. use_spheroid is off
// so distances agree with domain.Haversine.
func (p *IncidentRepo) FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error) {
	const op = "postgres.Incident.FindNearby"

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	terminal := make([]string, 0, 4)
	for _, s := range domain.TerminalStatuses() {
		terminal = append(terminal, string(s))
	}

	query := `
		WITH origin AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS g
		)
		SELECT ` + incidentColumns + `,
		       ST_Distance(i.geo_point, origin.g, false) AS distance_m
		FROM incidents i, origin
		WHERE i.status <> ALL($3::text[])
		  AND ($4::text = '' OR i.type = $4::text)
		  AND ST_DWithin(i.geo_point, origin.g, $5, false)
		ORDER BY distance_m, i.id
		LIMIT $6
	`

	rows, err := p.pool.Query(ctx, query,
		q.Point.Lng, q.Point.Lat, terminal, string(q.Type), q.RadiusMeters, q.EffectiveLimit(),
	)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.NearbyIncident, 0, 8)
	for rows.Next() {
		var dist float64
		inc, err := scanIncident(rows, &dist)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, domain.NearbyIncident{Incident: inc, DistanceMeters: dist})
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
