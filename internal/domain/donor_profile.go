package domain

import "time"

// BloodGroup enumerates the eight ABO/Rh groups.
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// BloodGroups lists every group in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

// Valid reports whether g is a known blood group.
func (g BloodGroup) Valid() bool {
	for _, candidate := range BloodGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// Gender of a donor.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Valid reports whether g is a known gender code.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Donor age bounds, inclusive.
const (
	MinDonorAge = 18
	MaxDonorAge = 65
)

// DonorProfile holds donor-specific attributes, one per donor user.
type DonorProfile struct {
	ID                string
	UserID            string
	BloodGroup        BloodGroup
	Gender            Gender
	Age               int
	LastDonationDate  *time.Time
	IsAvailable       bool
	MedicalConditions string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
