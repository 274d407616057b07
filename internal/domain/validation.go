package domain

import (
	"fmt"
	"strings"
)

// FieldErrors maps a form field to a human-readable message.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidateDonorAge checks the inclusive donor age window.
func ValidateDonorAge(age int) string {
	if age < MinDonorAge {
		return fmt.Sprintf("You must be at least %d years old to donate blood.", MinDonorAge)
	}
	if age > MaxDonorAge {
		return fmt.Sprintf("You must be %d or younger to donate blood.", MaxDonorAge)
	}
	return ""
}

// ValidateUnitsNeeded checks the inclusive per-request unit window.
func ValidateUnitsNeeded(units int) string {
	if units < MinUnitsNeeded {
		return fmt.Sprintf("You must request at least %d unit of blood.", MinUnitsNeeded)
	}
	if units > MaxUnitsNeeded {
		return fmt.Sprintf("You cannot request more than %d units at once.", MaxUnitsNeeded)
	}
	return ""
}

// ValidatePasswordConfirmation checks that both entered passwords match.
func ValidatePasswordConfirmation(password, confirmation string) string {
	if password == "" {
		return "Password is required."
	}
	if password != confirmation {
		return "Passwords do not match."
	}
	return ""
}

// ValidateRegistration checks a new account before it is persisted.
func ValidateRegistration(user *User, password, confirmation string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(user.Email) == "" {
		errs.Add("email", "Email is required.")
	}
	if strings.TrimSpace(user.Username) == "" {
		errs.Add("username", "Username is required.")
	}
	if !user.UserType.SelfAssignable() {
		errs.Add("user_type", "Invalid user type selected.")
	}
	if msg := ValidatePasswordConfirmation(password, confirmation); msg != "" {
		errs.Add("password2", msg)
	}
	return errs
}

// ValidateDonorProfile checks donor attributes on creation and edit.
func ValidateDonorProfile(profile *DonorProfile) FieldErrors {
	errs := FieldErrors{}
	if !profile.BloodGroup.Valid() {
		errs.Add("blood_group", "Select a valid blood group.")
	}
	if !profile.Gender.Valid() {
		errs.Add("gender", "Select a valid gender.")
	}
	if msg := ValidateDonorAge(profile.Age); msg != "" {
		errs.Add("age", msg)
	}
	return errs
}

// ValidateBloodRequest checks the business fields of a new request.
func ValidateBloodRequest(req *BloodRequest) FieldErrors {
	errs := FieldErrors{}
	if !req.BloodGroup.Valid() {
		errs.Add("blood_group", "Select a valid blood group.")
	}
	if msg := ValidateUnitsNeeded(req.UnitsNeeded); msg != "" {
		errs.Add("units_needed", msg)
	}
	if strings.TrimSpace(req.HospitalName) == "" {
		errs.Add("hospital_name", "Hospital name is required.")
	}
	if strings.TrimSpace(req.HospitalAddress) == "" {
		errs.Add("hospital_address", "Hospital address is required.")
	}
	if strings.TrimSpace(req.Reason) == "" {
		errs.Add("reason", "Reason is required.")
	}
	if !req.Urgency.Valid() {
		errs.Add("urgency", "Select a valid urgency.")
	}
	if req.RequiredDate.IsZero() {
		errs.Add("required_date", "Required date is required.")
	}
	return errs
}
