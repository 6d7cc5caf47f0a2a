package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditIncidentCreated AuditAction = "incident.created"
	AuditStatusChanged   AuditAction = "incident.status_changed"
	AuditUpvoteAdded     AuditAction = "incident.upvote_added"
	AuditUpvoteRemoved   AuditAction = "incident.upvote_removed"
)

type AuditEvent struct {
	ID         uuid.UUID      `json:"id"`
	Action     AuditAction    `json:"action"`
	IncidentID uuid.UUID      `json:"incident_id"`
	Actor      VoterIdentity  `json:"actor"`
	From       IncidentStatus `json:"from,omitempty"`
	To         IncidentStatus `json:"to,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	At         time.Time      `json:"at"`
}
