package domain

import "github.com/google/uuid"

type CreateIncidentRequest struct {
	Title            string       `json:"title" validate:"required,min=3,max=200"`
	Description      string       `json:"description" validate:"max=5000"`
	Type             IncidentType `json:"type" validate:"required,oneof=fire flood accident medical crime infrastructure natural_disaster other"`
	Severity         Severity     `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Lat              float64      `json:"lat" validate:"lat"`
	Lng              float64      `json:"lng" validate:"lng"`
	Media            []MediaRef   `json:"media" validate:"max=10,dive"`
	RelatedIncidents []uuid.UUID  `json:"related_incidents,omitempty"`
}

type TransitionRequest struct {
	Status      IncidentStatus `json:"status" validate:"required,oneof=verified assigned in_progress resolved closed duplicate false_report cancelled"`
	Reason      string         `json:"reason" validate:"max=1000"`
	DuplicateOf *uuid.UUID     `json:"duplicate_of,omitempty"`
	AssignedTo  *VoterIdentity `json:"assigned_to,omitempty"`
}

type CreateIncidentResponse struct {
	Incident            *Incident        `json:"incident"`
	DuplicateCandidates []NearbyIncident `json:"duplicate_candidates"`
}

type ListIncidentsRequest struct {
	Page   int            `query:"page" validate:"min=1"`
	Limit  int            `query:"limit" validate:"min=1,max=100"`
	Status IncidentStatus `query:"status"`
}

type ListIncidentsResponse struct {
	Incidents []*Incident `json:"incidents"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
	Total     int64       `json:"total"`
}

type GrantActionsRequest struct {
	Actions int `json:"actions" validate:"required,min=1,max=1000"`
}
