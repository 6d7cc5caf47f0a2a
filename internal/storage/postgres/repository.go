package postgres

import (
	"context"
	"encoding/json"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	_ service.IncidentStore = (*IncidentRepo)(nil)
	_ service.GuestStore    = (*GuestRepo)(nil)
)

// incidentColumns expects the incidents table aliased as i. Upvotes live in
// their own table and are folded back into a json array here.
const incidentColumns = `
	i.id, i.title, i.description, i.type, i.severity, i.status, i.status_history,
	ST_X(i.geo_point::geometry), ST_Y(i.geo_point::geometry),
	i.media,
	COALESCE((
		SELECT jsonb_agg(jsonb_build_object('kind', u.voter_kind, 'id', u.voter_id)
		                 ORDER BY u.created_at, u.voter_kind, u.voter_id)
		FROM incident_upvotes u
		WHERE u.incident_id = i.id
	), '[]'::jsonb),
	i.upvote_count, i.verification_score, i.reporter_kind, i.reporter_id,
	i.assigned_to, i.duplicate_of, i.related_incidents,
	i.verified_at, i.assigned_at, i.resolved_at, i.closed_at,
	i.created_at, i.updated_at`

// scanIncident reads one row selected with incidentColumns followed by extra.
func scanIncident(row pgx.Row, extra ...any) (*domain.Incident, error) {
	var (
		inc                              domain.Incident
		history, media, upvotes, related []byte
		assigned                         []byte
	)
	dest := []any{
		&inc.ID, &inc.Title, &inc.Description, &inc.Type, &inc.Severity, &inc.Status, &history,
		&inc.Location.Lng, &inc.Location.Lat,
		&media,
		&upvotes,
		&inc.UpvoteCount, &inc.VerificationScore, &inc.Reporter.Kind, &inc.Reporter.ID,
		&assigned, &inc.DuplicateOf, &related,
		&inc.VerifiedAt, &inc.AssignedAt, &inc.ResolvedAt, &inc.ClosedAt,
		&inc.CreatedAt, &inc.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{history, &inc.StatusHistory},
		{media, &inc.Media},
		{upvotes, &inc.Upvotes},
		{related, &inc.RelatedIncidents},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, err
		}
	}
	if len(assigned) > 0 {
		var v domain.VoterIdentity
		if err := json.Unmarshal(assigned, &v); err != nil {
			return nil, err
		}
		inc.AssignedTo = &v
	}

	inc.CreatedAt = inc.CreatedAt.UTC()
	inc.UpdatedAt = inc.UpdatedAt.UTC()
	inc.VerifiedAt = utcPtr(inc.VerifiedAt)
	inc.AssignedAt = utcPtr(inc.AssignedAt)
	inc.ResolvedAt = utcPtr(inc.ResolvedAt)
	inc.ClosedAt = utcPtr(inc.ClosedAt)
	for i := range inc.StatusHistory {
		inc.StatusHistory[i].At = inc.StatusHistory[i].At.UTC()
	}
	return &inc, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// jsonList renders a slice as a json array; nil becomes [] rather than null.
func jsonList[T any](s []T) (string, error) {
	if s == nil {
		s = []T{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// jsonOptional renders v as json, or SQL NULL when v is nil.
func jsonOptional(v *domain.VoterIdentity) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func incidentExists(ctx context.Context, q querier, id uuid.UUID) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
