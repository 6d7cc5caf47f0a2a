package domain

import (
	"strings"

	"incidentTrust/pkg/e"
)

type VoterKind string

const (
	VoterRegistered VoterKind = "registered"
	VoterGuest      VoterKind = "guest"
)

// VoterIdentity references either a registered user or a guest session.
// Two identities are equal when both kind and id match.
type VoterIdentity struct {
	Kind VoterKind `json:"kind"`
	ID   string    `json:"id"`
}

func RegisteredVoter(id string) VoterIdentity { return VoterIdentity{Kind: VoterRegistered, ID: id} }
func GuestVoter(id string) VoterIdentity      { return VoterIdentity{Kind: VoterGuest, ID: id} }

func (v VoterIdentity) Equal(other VoterIdentity) bool {
	return v.Kind == other.Kind && v.ID == other.ID
}

func (v VoterIdentity) IsRegistered() bool { return v.Kind == VoterRegistered }
func (v VoterIdentity) IsGuest() bool      { return v.Kind == VoterGuest }

// Key is the canonical "kind:id" form used as a set member by the stores.
func (v VoterIdentity) Key() string { return string(v.Kind) + ":" + v.ID }

func (v VoterIdentity) String() string { return v.Key() }

func (v VoterIdentity) Validate() error {
	switch v.Kind {
	case VoterRegistered, VoterGuest:
	default:
		return e.Validation("unknown voter kind %q", v.Kind)
	}
	if strings.TrimSpace(v.ID) == "" {
		return e.Validation("voter id is empty")
	}
	return nil
}

func ParseVoterKind(s string) (VoterKind, error) {
	switch k := VoterKind(strings.ToLower(strings.TrimSpace(s))); k {
	case VoterRegistered, VoterGuest:
		return k, nil
	default:
		return "", e.Validation("unknown voter kind %q", s)
	}
}

// ContainsVoter reports whether voters holds v.
func ContainsVoter(voters []VoterIdentity, v VoterIdentity) bool {
	for _, x := range voters {
		if x.Equal(v) {
			return true
		}
	}
	return false
}
