package domain

import (
	"fmt"
	"time"
)

// RequestStatus enumerates lifecycle states for blood requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	_, ok := requestTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s RequestStatus) Terminal() bool {
	return len(requestTransitions[s]) == 0
}

// Urgency is a display-only priority tag.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// Urgencies lists every urgency level in display order.
var Urgencies = []Urgency{UrgencyNormal, UrgencyUrgent, UrgencyEmergency}

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	default:
		return false
	}
}

// Unit bounds for a single request, inclusive.
const (
	MinUnitsNeeded = 1
	MaxUnitsNeeded = 10
)

// BloodRequest is a receiver's request for blood units.
type BloodRequest struct {
	ID              string
	RequesterID     string
	BloodGroup      BloodGroup
	UnitsNeeded     int
	HospitalName    string
	HospitalAddress string
	Reason          string
	Urgency         Urgency
	Status          RequestStatus
	RequiredDate    time.Time
	DonorID         *string
	// DonorUserID is the user owning DonorID, resolved on read.
	DonorUserID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRequester reports whether user owns the request.
func (r *BloodRequest) IsRequester(user *User) bool {
	return user != nil && r.RequesterID == user.ID
}

// IsBoundDonor reports whether user owns the donor profile bound to the request.
func (r *BloodRequest) IsBoundDonor(user *User) bool {
	return user != nil && r.DonorUserID != nil && *r.DonorUserID == user.ID
}

// CheckDonorInvariant verifies that a donor is bound exactly when the request
// is accepted or completed.
func (r *BloodRequest) CheckDonorInvariant() error {
	needsDonor := r.Status == RequestStatusAccepted || r.Status == RequestStatusCompleted
	hasDonor := r.DonorID != nil
	if needsDonor != hasDonor {
		return fmt.Errorf("blood request %s: status %s with donor bound=%t", r.ID, r.Status, hasDonor)
	}
	return nil
}

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted:  {RequestStatusCompleted},
	RequestStatusCompleted: {},
	RequestStatusCancelled: {},
}

// CanTransition reports whether the lifecycle allows current -> next.
func CanTransition(current, next RequestStatus) bool {
	for _, candidate := range requestTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
