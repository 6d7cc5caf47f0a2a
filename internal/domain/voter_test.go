package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"
)

func TestVoterIdentity_StructuralEquality(t *testing.T) {
	assert.True(t, domain.GuestVoter("a").Equal(domain.GuestVoter("a")))
	assert.False(t, domain.GuestVoter("a").Equal(domain.RegisteredVoter("a")))
	assert.False(t, domain.GuestVoter("a").Equal(domain.GuestVoter("b")))
}

func TestVoterIdentity_KeyRoundTrip(t *testing.T) {
	v := domain.RegisteredVoter("42")
	assert.Equal(t, "registered:42", v.Key())

	assert.Equal(t, "guest:g-1", domain.GuestVoter("g-1").Key())
	assert.True(t, v.IsRegistered())
	assert.False(t, v.IsGuest())
}

func TestVoterIdentity_Validate(t *testing.T) {
	assert.NoError(t, domain.GuestVoter("g").Validate())
	assert.ErrorIs(t, domain.GuestVoter(" ").Validate(), e.ErrValidation)
	assert.ErrorIs(t, domain.VoterIdentity{Kind: "robot", ID: "1"}.Validate(), e.ErrValidation)
}
