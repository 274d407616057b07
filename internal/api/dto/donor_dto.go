package dto

import (
	"time"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// DonorProfileRequest payload for donor registration and edits.
type DonorProfileRequest struct {
	BloodGroup        string `json:"blood_group" validate:"required"`
	Gender            string `json:"gender" validate:"required"`
	Age               int    `json:"age"`
	MedicalConditions string `json:"medical_conditions"`
	IsAvailable       *bool  `json:"is_available"`
	LastDonationDate  string `json:"last_donation_date" validate:"omitempty,datetime=2006-01-02"`
}

// DonorProfileResponse is the donor's own profile.
type DonorProfileResponse struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	BloodGroup        domain.BloodGroup `json:"blood_group"`
	Gender            domain.Gender     `json:"gender"`
	Age               int               `json:"age"`
	LastDonationDate  *time.Time        `json:"last_donation_date"`
	IsAvailable       bool              `json:"is_available"`
	MedicalConditions string            `json:"medical_conditions"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
