package domain

import "time"

// AdoptionStatus enumerates lifecycle states for adoption requests.
// PENDING is the only non-terminal state.
type AdoptionStatus string

const (
	AdoptionStatusPending  AdoptionStatus = "PENDING"
	AdoptionStatusApproved AdoptionStatus = "APPROVED"
	AdoptionStatusRejected AdoptionStatus = "REJECTED"
)

// Valid reports whether the status is one of the known values.
func (s AdoptionStatus) Valid() bool {
	switch s {
	case AdoptionStatusPending, AdoptionStatusApproved, AdoptionStatusRejected:
		return true
	}
	return false
}

// AdoptionRequest is an applicant's offer to adopt a pet. CreatedAt is set
// by the store on insert and never changes afterwards.
type AdoptionRequest struct {
	ID          string
	PetID       string
	ApplicantID string
	Message     string
	Status      AdoptionStatus
	CreatedAt   time.Time
}
