package events

import (
	"time"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdoptionRequestCreated       EventType = "adoption_request_created"
	EventAdoptionRequestStatusChanged EventType = "adoption_request_status_changed"
	EventPetAdopted                   EventType = "pet_adopted"
)

// Event represents a domain event emitted by services. ActorEmail is empty
// for unauthenticated mutations.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	RequestID  string      `json:"request_id,omitempty"`
	PetID      string      `json:"pet_id,omitempty"`
	ActorEmail string      `json:"actor_email,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// AdoptionRequestCreatedPayload payload.
type AdoptionRequestCreatedPayload struct {
	ApplicantID string `json:"applicant_id"`
	PetID       string `json:"pet_id"`
	Message     string `json:"message,omitempty"`
}

// AdoptionRequestStatusChangedPayload payload.
type AdoptionRequestStatusChangedPayload struct {
	OldStatus domain.AdoptionStatus `json:"old_status"`
	NewStatus domain.AdoptionStatus `json:"new_status"`
}

// PetAdoptedPayload payload.
type PetAdoptedPayload struct {
	PetID             string `json:"pet_id"`
	ApprovedRequestID string `json:"approved_request_id"`
	RejectedCount     int    `json:"rejected_count"`
}
