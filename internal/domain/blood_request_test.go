package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]RequestStatus{
		{RequestStatusPending, RequestStatusAccepted},
		{RequestStatusPending, RequestStatusCancelled},
		{RequestStatusAccepted, RequestStatusCompleted},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]RequestStatus{
		{RequestStatusPending, RequestStatusCompleted},
		{RequestStatusAccepted, RequestStatusCancelled},
		{RequestStatusAccepted, RequestStatusPending},
		{RequestStatusCompleted, RequestStatusCancelled},
		{RequestStatusCancelled, RequestStatusAccepted},
		{RequestStatusCancelled, RequestStatusPending},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	assert.True(t, RequestStatusCompleted.Terminal())
	assert.True(t, RequestStatusCancelled.Terminal())
	assert.False(t, RequestStatusPending.Terminal())
	assert.False(t, RequestStatus("lost").Valid())
}

func TestCheckDonorInvariant(t *testing.T) {
	donorID := "profile-1"

	assert.NoError(t, (&BloodRequest{Status: RequestStatusPending}).CheckDonorInvariant())
	assert.NoError(t, (&BloodRequest{Status: RequestStatusCancelled}).CheckDonorInvariant())
	assert.NoError(t, (&BloodRequest{Status: RequestStatusAccepted, DonorID: &donorID}).CheckDonorInvariant())
	assert.NoError(t, (&BloodRequest{Status: RequestStatusCompleted, DonorID: &donorID}).CheckDonorInvariant())

	assert.Error(t, (&BloodRequest{Status: RequestStatusAccepted}).CheckDonorInvariant())
	assert.Error(t, (&BloodRequest{Status: RequestStatusPending, DonorID: &donorID}).CheckDonorInvariant())
}

func TestCanAccept(t *testing.T) {
	donor := &User{ID: "u-donor", UserType: UserTypeDonor}
	receiver := &User{ID: "u-recv", UserType: UserTypeReceiver}
	profile := &DonorProfile{ID: "p-1", UserID: donor.ID, IsAvailable: true}
	pending := &BloodRequest{Status: RequestStatusPending}

	assert.True(t, CanAccept(donor, profile, pending))
	assert.False(t, CanAccept(nil, profile, pending), "anonymous viewer")
	assert.False(t, CanAccept(receiver, profile, pending), "receiver role")
	assert.False(t, CanAccept(donor, nil, pending), "no donor profile")
	assert.False(t, CanAccept(donor, profile, &BloodRequest{Status: RequestStatusAccepted}), "not pending")

	unavailable := *profile
	unavailable.IsAvailable = false
	assert.False(t, CanAccept(donor, &unavailable, pending), "unavailable donor")

	foreign := *profile
	foreign.UserID = "someone-else"
	assert.False(t, CanAccept(donor, &foreign, pending), "profile owned by another user")
}
