package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	StatusReported    IncidentStatus = "reported"
	StatusVerified    IncidentStatus = "verified"
	StatusAssigned    IncidentStatus = "assigned"
	StatusInProgress  IncidentStatus = "in_progress"
	StatusResolved    IncidentStatus = "resolved"
	StatusClosed      IncidentStatus = "closed"
	StatusDuplicate   IncidentStatus = "duplicate"
	StatusFalseReport IncidentStatus = "false_report"
	StatusCancelled   IncidentStatus = "cancelled"
)

type IncidentType string

const (
	TypeFire            IncidentType = "fire"
	TypeFlood           IncidentType = "flood"
	TypeAccident        IncidentType = "accident"
	TypeMedical         IncidentType = "medical"
	TypeCrime           IncidentType = "crime"
	TypeInfrastructure  IncidentType = "infrastructure"
	TypeNaturalDisaster IncidentType = "natural_disaster"
	TypeOther           IncidentType = "other"
)

func (t IncidentType) Valid() bool {
	switch t {
	case TypeFire, TypeFlood, TypeAccident, TypeMedical, TypeCrime,
		TypeInfrastructure, TypeNaturalDisaster, TypeOther:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

const (
	MaxMediaPerIncident  = 10
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

type MediaRef struct {
	Type MediaType `json:"type" validate:"required,oneof=image video audio"`
	URL  string    `json:"url" validate:"required,url"`
}

type StatusEntry struct {
	Status IncidentStatus `json:"status"`
	Actor  VoterIdentity  `json:"actor"`
	At     time.Time      `json:"at"`
	Reason string         `json:"reason,omitempty"`
}

type Incident struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Type              IncidentType    `json:"type"`
	Severity          Severity        `json:"severity"`
	Status            IncidentStatus  `json:"status"`
	StatusHistory     []StatusEntry   `json:"status_history"`
	Location          GeoPoint        `json:"location"`
	Media             []MediaRef      `json:"media"`
	Upvotes           []VoterIdentity `json:"upvotes"`
	UpvoteCount       int             `json:"upvote_count"`
	VerificationScore int             `json:"verification_score"`
	Reporter          VoterIdentity   `json:"reporter"`
	AssignedTo        *VoterIdentity  `json:"assigned_to,omitempty"`
	DuplicateOf       *uuid.UUID      `json:"duplicate_of,omitempty"`
	RelatedIncidents  []uuid.UUID     `json:"related_incidents,omitempty"`
	VerifiedAt        *time.Time      `json:"verified_at,omitempty"`
	AssignedAt        *time.Time      `json:"assigned_at,omitempty"`
	ResolvedAt        *time.Time      `json:"resolved_at,omitempty"`
	ClosedAt          *time.Time      `json:"closed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewIncident builds a reported incident from an already shape-checked draft.
// Coordinates and bounded collections are re-validated here.
func NewIncident(req CreateIncidentRequest, reporter VoterIdentity, now time.Time) (*Incident, error) {
	if err := reporter.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, e.Validation("title must be 1..%d characters", MaxTitleLength)
	}
	if utf8.RuneCountInString(req.Description) > MaxDescriptionLength {
		return nil, e.Validation("description longer than %d characters", MaxDescriptionLength)
	}
	if !req.Type.Valid() {
		return nil, e.Validation("unknown incident type %q", req.Type)
	}
	severity := req.Severity
	if severity == "" {
		severity = SeverityMedium
	}
	if !severity.Valid() {
		return nil, e.Validation("unknown severity %q", req.Severity)
	}
	loc := GeoPoint{Lng: req.Lng, Lat: req.Lat}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if len(req.Media) > MaxMediaPerIncident {
		return nil, e.Validation("at most %d media attachments", MaxMediaPerIncident)
	}
	for _, m := range req.Media {
		switch m.Type {
		case MediaImage, MediaVideo, MediaAudio:
		default:
			return nil, e.Validation("unknown media type %q", m.Type)
		}
		if strings.TrimSpace(m.URL) == "" {
			return nil, e.Validation("media url is empty")
		}
	}

	now = now.UTC()
	inc := &Incident{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Type:        req.Type,
		Severity:    severity,
		Status:      StatusReported,
		StatusHistory: []StatusEntry{{
			Status: StatusReported,
			Actor:  reporter,
			At:     now,
			Reason: "reported",
		}},
		Location:         loc,
		Media:            append([]MediaRef(nil), req.Media...),
		Upvotes:          []VoterIdentity{},
		Reporter:         reporter,
		RelatedIncidents: append([]uuid.UUID(nil), req.RelatedIncidents...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if inc.Media == nil {
		inc.Media = []MediaRef{}
	}
	return inc, nil
}

// Clone returns a deep copy so callers can derive a next state without
// touching the stored one.
func (inc *Incident) Clone() *Incident {
	if inc == nil {
		return nil
	}
	c := *inc
	c.StatusHistory = cloneSlice(inc.StatusHistory)
	c.Media = cloneSlice(inc.Media)
	c.Upvotes = cloneSlice(inc.Upvotes)
	c.RelatedIncidents = cloneSlice(inc.RelatedIncidents)
	if inc.AssignedTo != nil {
		v := *inc.AssignedTo
		c.AssignedTo = &v
	}
	if inc.DuplicateOf != nil {
		id := *inc.DuplicateOf
		c.DuplicateOf = &id
	}
	c.VerifiedAt = copyTime(inc.VerifiedAt)
	c.AssignedAt = copyTime(inc.AssignedAt)
	c.ResolvedAt = copyTime(inc.ResolvedAt)
	c.ClosedAt = copyTime(inc.ClosedAt)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// CheckInvariants verifies the structural invariants every stored incident holds.
func (inc *Incident) CheckInvariants() error {
	if len(inc.StatusHistory) == 0 {
		return e.Validation("status history is empty")
	}
	if last := inc.StatusHistory[len(inc.StatusHistory)-1]; last.Status != inc.Status {
		return e.Validation("last history status %q differs from status %q", last.Status, inc.Status)
	}
	if inc.UpvoteCount != len(inc.Upvotes) {
		return e.Validation("upvote count %d differs from %d voters", inc.UpvoteCount, len(inc.Upvotes))
	}
	seen := make(map[string]struct{}, len(inc.Upvotes))
	for _, v := range inc.Upvotes {
		if _, dup := seen[v.Key()]; dup {
			return e.Validation("voter %s upvoted twice", v.Key())
		}
		seen[v.Key()] = struct{}{}
	}
	if inc.VerificationScore < 0 || inc.VerificationScore > 100 {
		return e.Validation("score %d out of range", inc.VerificationScore)
	}
	return inc.Location.Validate()
}

func (inc *Incident) HasUpvoted(v VoterIdentity) bool {
	return ContainsVoter(inc.Upvotes, v)
}
