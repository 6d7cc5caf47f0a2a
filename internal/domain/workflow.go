package domain

import (
	"strings"
	"time"

	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

var transitions = map[IncidentStatus][]IncidentStatus{
	StatusReported:   {StatusVerified, StatusDuplicate, StatusFalseReport, StatusCancelled},
	StatusVerified:   {StatusAssigned, StatusDuplicate, StatusFalseReport, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusResolved, StatusCancelled},
	StatusResolved:   {StatusClosed},
}

func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusReported, StatusVerified, StatusAssigned, StatusInProgress, StatusResolved,
		StatusClosed, StatusDuplicate, StatusFalseReport, StatusCancelled:
		return true
	}
	return false
}

func (s IncidentStatus) IsTerminal() bool {
	switch s {
	case StatusClosed, StatusDuplicate, StatusFalseReport, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatuses lists the states with no outgoing transition.
func TerminalStatuses() []IncidentStatus {
	return []IncidentStatus{StatusClosed, StatusDuplicate, StatusFalseReport, StatusCancelled}
}

// AllowedTransitions returns a copy of the states reachable from s in one step.
func AllowedTransitions(s IncidentStatus) []IncidentStatus {
	return append([]IncidentStatus(nil), transitions[s]...)
}

func CanTransition(from, to IncidentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AffectsScore reports whether a move from -> to should refresh the
// verification score. Verification and final states do; intermediate
// workflow steps keep the stored score.
func AffectsScore(from, to IncidentStatus) bool {
	return to == StatusVerified || to.IsTerminal() || from.IsTerminal()
}

type TransitionOptions struct {
	DuplicateOf *uuid.UUID
	AssignedTo  *VoterIdentity
}

// Transition derives the next state of inc. inc itself is left untouched;
// history is appended on a copy, prior entries are never rewritten.
func (inc *Incident) Transition(to IncidentStatus, actor VoterIdentity, reason string, opts TransitionOptions, now time.Time) (*Incident, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, e.Validation("unknown status %q", to)
	}
	if opts.DuplicateOf != nil && to != StatusDuplicate {
		return nil, e.Validation("duplicate_of is only accepted with status %s", StatusDuplicate)
	}
	if opts.AssignedTo != nil && to != StatusAssigned {
		return nil, e.Validation("assigned_to is only accepted with status %s", StatusAssigned)
	}
	if inc.Status.IsTerminal() {
		return nil, e.Transition("incident %s is %s, a terminal status", inc.ID, inc.Status)
	}
	if !CanTransition(inc.Status, to) {
		return nil, e.Transition("cannot move incident from %s to %s; allowed: %v", inc.Status, to, AllowedTransitions(inc.Status))
	}

	next := inc.Clone()
	now = now.UTC()

	switch to {
	case StatusDuplicate:
		if opts.DuplicateOf != nil {
			if *opts.DuplicateOf == inc.ID {
				return nil, e.Validation("incident cannot duplicate itself")
			}
			id := *opts.DuplicateOf
			next.DuplicateOf = &id
		}
	case StatusVerified:
		next.VerifiedAt = &now
	case StatusAssigned:
		next.AssignedAt = &now
		if opts.AssignedTo != nil {
			if err := opts.AssignedTo.Validate(); err != nil {
				return nil, err
			}
			a := *opts.AssignedTo
			next.AssignedTo = &a
		}
	case StatusResolved:
		next.ResolvedAt = &now
	case StatusClosed:
		next.ClosedAt = &now
	}

	next.Status = to
	next.StatusHistory = append(next.StatusHistory, StatusEntry{
		Status: to,
		Actor:  actor,
		At:     now,
		Reason: strings.TrimSpace(reason),
	})
	next.UpdatedAt = now
	return next, nil
}

// CheckDuplicateTarget rejects a direct two-cycle: marking inc as a duplicate
// of target while target already points back at inc. Longer chains are not
// followed.
func CheckDuplicateTarget(inc, target *Incident) error {
	if target == nil {
		return nil
	}
	if target.ID == inc.ID {
		return e.Validation("incident cannot duplicate itself")
	}
	if target.DuplicateOf != nil && *target.DuplicateOf == inc.ID {
		return e.Validation("incident %s is already marked as a duplicate of %s", target.ID, inc.ID)
	}
	return nil
}
