package dto

import (
	"time"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

// CreateAdoptionRequest payload.
type CreateAdoptionRequest struct {
	PetID   string `json:"pet_id"`
	Message string `json:"message,omitempty"`
}

// UpdateAdoptionStatusRequest payload.
type UpdateAdoptionStatusRequest struct {
	Status domain.AdoptionStatus `json:"status"`
}

// AdoptionResponse describes an adoption request.
type AdoptionResponse struct {
	ID          string                `json:"id"`
	PetID       string                `json:"pet_id"`
	ApplicantID string                `json:"applicant_id"`
	Message     string                `json:"message,omitempty"`
	Status      domain.AdoptionStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}
