package mongo

import (
	"time"

	"incidentTrust/internal/domain"

	"github.com/google/uuid"
)

type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type voterDoc struct {
	Kind string `bson:"kind"`
	ID   string `bson:"id"`
}

type statusEntryDoc struct {
	Status string    `bson:"status"`
	Actor  voterDoc  `bson:"actor"`
	At     time.Time `bson:"at"`
	Reason string    `bson:"reason,omitempty"`
}

type mediaDoc struct {
	Type string `bson:"type"`
	URL  string `bson:"url"`
}

// incidentDoc keeps upvote keys next to the voters so membership checks can
// be expressed in an update filter.
type incidentDoc struct {
	ID                string           `bson:"_id"`
	Title             string           `bson:"title"`
	Description       string           `bson:"description"`
	Type              string           `bson:"type"`
	Severity          string           `bson:"severity"`
	Status            string           `bson:"status"`
	StatusHistory     []statusEntryDoc `bson:"status_history"`
	Location          geoJSONPoint     `bson:"location"`
	Media             []mediaDoc       `bson:"media"`
	Upvotes           []voterDoc       `bson:"upvotes"`
	UpvoteKeys        []string         `bson:"upvote_keys"`
	UpvoteCount       int              `bson:"upvote_count"`
	VerificationScore int              `bson:"verification_score"`
	Reporter          voterDoc         `bson:"reporter"`
	AssignedTo        *voterDoc        `bson:"assigned_to,omitempty"`
	DuplicateOf       *string          `bson:"duplicate_of,omitempty"`
	RelatedIncidents  []string         `bson:"related_incidents"`
	VerifiedAt        *time.Time       `bson:"verified_at,omitempty"`
	AssignedAt        *time.Time       `bson:"assigned_at,omitempty"`
	ResolvedAt        *time.Time       `bson:"resolved_at,omitempty"`
	ClosedAt          *time.Time       `bson:"closed_at,omitempty"`
	CreatedAt         time.Time        `bson:"created_at"`
	UpdatedAt         time.Time        `bson:"updated_at"`
}

type guestDoc struct {
	ID           string    `bson:"_id"`
	ActionCount  int       `bson:"action_count"`
	MaxActions   int       `bson:"max_actions"`
	LastActiveAt time.Time `bson:"last_active_at"`
	ExpiresAt    time.Time `bson:"expires_at"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toVoterDoc(v domain.VoterIdentity) voterDoc {
	return voterDoc{Kind: string(v.Kind), ID: v.ID}
}

func (d voterDoc) toDomain() domain.VoterIdentity {
	return domain.VoterIdentity{Kind: domain.VoterKind(d.Kind), ID: d.ID}
}

func toStatusEntryDoc(s domain.StatusEntry) statusEntryDoc {
	return statusEntryDoc{Status: string(s.Status), Actor: toVoterDoc(s.Actor), At: s.At, Reason: s.Reason}
}

func toIncidentDoc(inc *domain.Incident) incidentDoc {
	d := incidentDoc{
		ID:                inc.ID.String(),
		Title:             inc.Title,
		Description:       inc.Description,
		Type:              string(inc.Type),
		Severity:          string(inc.Severity),
		Status:            string(inc.Status),
		StatusHistory:     make([]statusEntryDoc, 0, len(inc.StatusHistory)),
		Location:          geoJSONPoint{Type: "Point", Coordinates: []float64{inc.Location.Lng, inc.Location.Lat}},
		Media:             make([]mediaDoc, 0, len(inc.Media)),
		Upvotes:           make([]voterDoc, 0, len(inc.Upvotes)),
		UpvoteKeys:        make([]string, 0, len(inc.Upvotes)),
		UpvoteCount:       len(inc.Upvotes),
		VerificationScore: inc.VerificationScore,
		Reporter:          toVoterDoc(inc.Reporter),
		DuplicateOf:       uuidString(inc.DuplicateOf),
		RelatedIncidents:  make([]string, 0, len(inc.RelatedIncidents)),
		VerifiedAt:        inc.VerifiedAt,
		AssignedAt:        inc.AssignedAt,
		ResolvedAt:        inc.ResolvedAt,
		ClosedAt:          inc.ClosedAt,
		CreatedAt:         inc.CreatedAt,
		UpdatedAt:         inc.UpdatedAt,
	}
	for _, s := range inc.StatusHistory {
		d.StatusHistory = append(d.StatusHistory, toStatusEntryDoc(s))
	}
	for _, m := range inc.Media {
		d.Media = append(d.Media, mediaDoc{Type: string(m.Type), URL: m.URL})
	}
	for _, v := range inc.Upvotes {
		d.Upvotes = append(d.Upvotes, toVoterDoc(v))
		d.UpvoteKeys = append(d.UpvoteKeys, v.Key())
	}
	for _, r := range inc.RelatedIncidents {
		d.RelatedIncidents = append(d.RelatedIncidents, r.String())
	}
	if inc.AssignedTo != nil {
		a := toVoterDoc(*inc.AssignedTo)
		d.AssignedTo = &a
	}
	return d
}

func (d incidentDoc) toDomain() (*domain.Incident, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	inc := &domain.Incident{
		ID:                id,
		Title:             d.Title,
		Description:       d.Description,
		Type:              domain.IncidentType(d.Type),
		Severity:          domain.Severity(d.Severity),
		Status:            domain.IncidentStatus(d.Status),
		StatusHistory:     make([]domain.StatusEntry, 0, len(d.StatusHistory)),
		Media:             make([]domain.MediaRef, 0, len(d.Media)),
		Upvotes:           make([]domain.VoterIdentity, 0, len(d.Upvotes)),
		UpvoteCount:       d.UpvoteCount,
		VerificationScore: d.VerificationScore,
		Reporter:          d.Reporter.toDomain(),
		VerifiedAt:        utcPtr(d.VerifiedAt),
		AssignedAt:        utcPtr(d.AssignedAt),
		ResolvedAt:        utcPtr(d.ResolvedAt),
		ClosedAt:          utcPtr(d.ClosedAt),
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
	if len(d.Location.Coordinates) == 2 {
		inc.Location = domain.GeoPoint{Lng: d.Location.Coordinates[0], Lat: d.Location.Coordinates[1]}
	}
	for _, s := range d.StatusHistory {
		inc.StatusHistory = append(inc.StatusHistory, domain.StatusEntry{
			Status: domain.IncidentStatus(s.Status),
			Actor:  s.Actor.toDomain(),
			At:     s.At.UTC(),
			Reason: s.Reason,
		})
	}
	for _, m := range d.Media {
		inc.Media = append(inc.Media, domain.MediaRef{Type: domain.MediaType(m.Type), URL: m.URL})
	}
	for _, v := range d.Upvotes {
		inc.Upvotes = append(inc.Upvotes, v.toDomain())
	}
	for _, r := range d.RelatedIncidents {
		rid, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		inc.RelatedIncidents = append(inc.RelatedIncidents, rid)
	}
	if d.AssignedTo != nil {
		a := d.AssignedTo.toDomain()
		inc.AssignedTo = &a
	}
	if d.DuplicateOf != nil {
		dup, err := uuid.Parse(*d.DuplicateOf)
		if err != nil {
			return nil, err
		}
		inc.DuplicateOf = &dup
	}
	return inc, nil
}

func toGuestDoc(g *domain.Guest) guestDoc {
	return guestDoc{
		ID:           g.ID,
		ActionCount:  g.ActionCount,
		MaxActions:   g.MaxActions,
		LastActiveAt: g.LastActiveAt,
		ExpiresAt:    g.ExpiresAt,
		CreatedAt:    g.CreatedAt,
	}
}

func (d guestDoc) toDomain() *domain.Guest {
	return &domain.Guest{
		ID:           d.ID,
		ActionCount:  d.ActionCount,
		MaxActions:   d.MaxActions,
		LastActiveAt: d.LastActiveAt.UTC(),
		ExpiresAt:    d.ExpiresAt.UTC(),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
