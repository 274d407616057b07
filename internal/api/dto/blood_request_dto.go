package dto

import (
	"time"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateBloodRequestRequest payload.
type CreateBloodRequestRequest struct {
	BloodGroup      string `json:"blood_group" validate:"required"`
	UnitsNeeded     int    `json:"units_needed"`
	HospitalName    string `json:"hospital_name" validate:"required,max=200"`
	HospitalAddress string `json:"hospital_address" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	Urgency         string `json:"urgency"`
	RequiredDate    string `json:"required_date" validate:"required,datetime=2006-01-02"`
}

// BloodRequestListQuery captures listing filters.
type BloodRequestListQuery struct {
	BloodGroup string `query:"blood_group"`
	City       string `query:"city"`
	Urgency    string `query:"urgency"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
}

// BloodRequestResponse is the public view of a request.
type BloodRequestResponse struct {
	ID              string               `json:"id"`
	RequesterID     string               `json:"requester_id"`
	BloodGroup      domain.BloodGroup    `json:"blood_group"`
	UnitsNeeded     int                  `json:"units_needed"`
	HospitalName    string               `json:"hospital_name"`
	HospitalAddress string               `json:"hospital_address"`
	Reason          string               `json:"reason"`
	Urgency         domain.Urgency       `json:"urgency"`
	Status          domain.RequestStatus `json:"status"`
	RequiredDate    string               `json:"required_date"`
	DonorID         *string              `json:"donor_id"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BloodRequestDetailResponse adds viewer-specific flags.
type BloodRequestDetailResponse struct {
	BloodRequestResponse
	CanAccept bool `json:"can_accept"`
}

// DashboardResponse is the landing page summary.
type DashboardResponse struct {
	TotalDonors     int                    `json:"total_donors"`
	PendingRequests int                    `json:"pending_requests"`
	RecentRequests  []BloodRequestResponse `json:"recent_requests"`
}
