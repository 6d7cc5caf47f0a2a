package domain

import (
	"time"

	"incidentTrust/pkg/e"

	"github.com/google/uuid"
)

const (
	DefaultGuestMaxActions = 10
	DefaultGuestTTL        = 24 * time.Hour
)

// Guest is an anonymous actor with a bounded action quota.
type Guest struct {
	ID           string    `json:"id"`
	ActionCount  int       `json:"action_count"`
	MaxActions   int       `json:"max_actions"`
	LastActiveAt time.Time `json:"last_active_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewGuest(maxActions int, ttl time.Duration, now time.Time) (*Guest, error) {
	if maxActions <= 0 {
		return nil, e.Validation("guest max actions must be positive")
	}
	if ttl <= 0 {
		return nil, e.Validation("guest ttl must be positive")
	}
	now = now.UTC()
	return &Guest{
		ID:           uuid.NewString(),
		MaxActions:   maxActions,
		LastActiveAt: now,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}, nil
}

func (g *Guest) Remaining() int {
	return max(g.MaxActions-g.ActionCount, 0)
}

func (g *Guest) Expired(now time.Time) bool {
	return !g.ExpiresAt.IsZero() && !now.Before(g.ExpiresAt)
}

type GuestQuota struct {
	GuestID    string    `json:"guest_id"`
	Used       int       `json:"used"`
	MaxActions int       `json:"max_actions"`
	Remaining  int       `json:"remaining"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (g *Guest) Quota() GuestQuota {
	return GuestQuota{
		GuestID:    g.ID,
		Used:       g.ActionCount,
		MaxActions: g.MaxActions,
		Remaining:  g.Remaining(),
		ExpiresAt:  g.ExpiresAt,
	}
}
