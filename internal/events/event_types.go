package events

import (
	"time"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated   EventType = "blood_request_created"
	EventRequestAccepted  EventType = "blood_request_accepted"
	EventRequestCompleted EventType = "blood_request_completed"
	EventRequestCancelled EventType = "blood_request_cancelled"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string          `json:"user_id"`
	UserType domain.UserType `json:"user_type"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	BloodGroup   domain.BloodGroup `json:"blood_group"`
	UnitsNeeded  int               `json:"units_needed"`
	Urgency      domain.Urgency    `json:"urgency"`
	HospitalName string            `json:"hospital_name"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus   domain.RequestStatus `json:"old_status"`
	NewStatus   domain.RequestStatus `json:"new_status"`
	RequesterID string               `json:"requester_id"`
	DonorID     *string              `json:"donor_id,omitempty"`
}
