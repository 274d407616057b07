package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloodconnect/internal/domain"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

func donorInput(age int) DonorProfileInput {
	return DonorProfileInput{
		BloodGroup: domain.BloodGroupABNeg,
		Gender:     domain.GenderOther,
		Age:        age,
	}
}

func TestRegisterAsDonor(t *testing.T) {
	f := newFixture()
	user := f.user(t, "d@example.com", domain.UserTypeDonor, "")

	profile, err := f.donors.RegisterAsDonor(f.ctx, user, donorInput(18))
	require.NoError(t, err)
	assert.True(t, profile.IsAvailable)
	assert.Equal(t, user.ID, profile.UserID)

	_, err = f.donors.RegisterAsDonor(f.ctx, user, donorInput(30))
	assertCode(t, err, apperrors.CodeConflict, MsgAlreadyDonor)
}

func TestRegisterAsDonorChecks(t *testing.T) {
	f := newFixture()
	receiver := f.user(t, "r@example.com", domain.UserTypeReceiver, "")
	donor := f.user(t, "d@example.com", domain.UserTypeDonor, "")

	_, err := f.donors.RegisterAsDonor(f.ctx, receiver, donorInput(30))
	assertCode(t, err, apperrors.CodeForbidden, MsgOnlyDonorsCanRegister)

	for age, want := range map[int]string{
		17: "You must be at least 18 years old to donate blood.",
		66: "You must be 65 or younger to donate blood.",
	} {
		_, err = f.donors.RegisterAsDonor(f.ctx, donor, donorInput(age))
		assertCode(t, err, apperrors.CodeValidation, "")
		assert.Equal(t, want, apperrors.ToDomainError(err).Details["fields"].(map[string]string)["age"])
	}

	profile, err := f.donors.RegisterAsDonor(f.ctx, donor, donorInput(65))
	require.NoError(t, err)
	assert.Equal(t, 65, profile.Age)
}

func TestEditDonorProfile(t *testing.T) {
	f := newFixture()
	donor := f.donor(t, "d@example.com", true)
	unavailable := false
	donated := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	input := donorInput(40)
	input.IsAvailable = &unavailable
	input.LastDonationDate = &donated
	updated, err := f.donors.EditDonorProfile(f.ctx, donor, input)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	require.NotNil(t, updated.LastDonationDate)
	assert.True(t, donated.Equal(*updated.LastDonationDate))

	stored, err := f.donors.GetDonorProfile(f.ctx, donor)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Age)
	assert.False(t, stored.IsAvailable)

	_, err = f.donors.EditDonorProfile(f.ctx, donor, donorInput(70))
	assertCode(t, err, apperrors.CodeValidation, "")
}

func TestGetDonorProfileChecks(t *testing.T) {
	f := newFixture()
	receiver := f.user(t, "r@example.com", domain.UserTypeReceiver, "")
	bare := f.user(t, "d@example.com", domain.UserTypeDonor, "")

	_, err := f.donors.GetDonorProfile(f.ctx, receiver)
	assertCode(t, err, apperrors.CodeForbidden, MsgOnlyDonorsCanAccessPage)

	_, err = f.donors.GetDonorProfile(f.ctx, bare)
	assertCode(t, err, apperrors.CodeNotFound, "")

	_, err = f.donors.GetDonorProfile(f.ctx, nil)
	assertCode(t, err, apperrors.CodeUnauthorized, "")
}
