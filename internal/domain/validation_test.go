package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDonorAge(t *testing.T) {
	cases := []struct {
		name    string
		age     int
		wantErr string
	}{
		{name: "seventeen is too young", age: 17, wantErr: "at least 18"},
		{name: "eighteen accepted", age: 18},
		{name: "sixty five accepted", age: 65},
		{name: "sixty six is too old", age: 66, wantErr: "65 or younger"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := ValidateDonorAge(tc.age)
			if tc.wantErr == "" {
				assert.Empty(t, msg)
				return
			}
			assert.Contains(t, msg, tc.wantErr)
		})
	}
}

func TestValidateUnitsNeeded(t *testing.T) {
	assert.Contains(t, ValidateUnitsNeeded(0), "at least 1")
	assert.Empty(t, ValidateUnitsNeeded(1))
	assert.Empty(t, ValidateUnitsNeeded(10))
	assert.Contains(t, ValidateUnitsNeeded(11), "more than 10")
}

func TestValidateRegistration(t *testing.T) {
	t.Run("accepts donor with matching passwords", func(t *testing.T) {
		user := &User{Email: "d@example.com", Username: "donor", UserType: UserTypeDonor}
		assert.True(t, ValidateRegistration(user, "s3cret", "s3cret").Empty())
	})

	t.Run("rejects mismatched passwords", func(t *testing.T) {
		user := &User{Email: "r@example.com", Username: "recv", UserType: UserTypeReceiver}
		errs := ValidateRegistration(user, "one", "two")
		assert.Equal(t, "Passwords do not match.", errs["password2"])
	})

	t.Run("rejects admin self assignment", func(t *testing.T) {
		user := &User{Email: "a@example.com", Username: "admin", UserType: UserTypeAdmin}
		errs := ValidateRegistration(user, "pw", "pw")
		assert.Equal(t, "Invalid user type selected.", errs["user_type"])
	})

	t.Run("rejects unknown role and missing email", func(t *testing.T) {
		user := &User{Username: "x", UserType: UserType("nurse")}
		errs := ValidateRegistration(user, "pw", "pw")
		assert.Contains(t, errs, "user_type")
		assert.Contains(t, errs, "email")
	})
}

func TestValidateBloodRequest(t *testing.T) {
	valid := func() *BloodRequest {
		return &BloodRequest{
			BloodGroup:      BloodGroupONeg,
			UnitsNeeded:     2,
			HospitalName:    "City General",
			HospitalAddress: "1 Main St",
			Reason:          "surgery",
			Urgency:         UrgencyEmergency,
			RequiredDate:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	require.True(t, ValidateBloodRequest(valid()).Empty())

	req := valid()
	req.UnitsNeeded = 11
	req.HospitalName = "  "
	req.Urgency = "whenever"
	errs := ValidateBloodRequest(req)
	assert.Contains(t, errs["units_needed"], "more than 10")
	assert.Contains(t, errs, "hospital_name")
	assert.Contains(t, errs, "urgency")

	req = valid()
	req.BloodGroup = "C+"
	req.RequiredDate = time.Time{}
	errs = ValidateBloodRequest(req)
	assert.Contains(t, errs, "blood_group")
	assert.Contains(t, errs, "required_date")
}

func TestValidateDonorProfile(t *testing.T) {
	profile := &DonorProfile{BloodGroup: BloodGroupABPos, Gender: GenderFemale, Age: 30}
	assert.True(t, ValidateDonorProfile(profile).Empty())

	profile.Age = 17
	profile.Gender = "X"
	errs := ValidateDonorProfile(profile)
	assert.Contains(t, errs["age"], "at least 18")
	assert.Contains(t, errs, "gender")
}

func TestFieldErrorsKeepsFirstMessage(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("age", "first")
	errs.Add("age", "second")
	assert.Equal(t, "first", errs["age"])
	assert.False(t, errs.Empty())
}
