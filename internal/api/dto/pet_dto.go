package dto

import (
	"time"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

// CreatePetRequest payload.
type CreatePetRequest struct {
	Name        string         `json:"name"`
	Type        domain.PetType `json:"type"`
	Breed       string         `json:"breed"`
	Gender      string         `json:"gender"`
	Age         int            `json:"age"`
	Size        string         `json:"size,omitempty"`
	Description string         `json:"description,omitempty"`
}

// UpdatePetRequest carries the generic update fields.
type UpdatePetRequest struct {
	Name        string         `json:"name"`
	Age         int            `json:"age"`
	Type        domain.PetType `json:"type"`
	Description string         `json:"description,omitempty"`
}

// PetResponse describes a pet listing.
type PetResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        domain.PetType   `json:"type"`
	Breed       string           `json:"breed"`
	Gender      string           `json:"gender"`
	Age         int              `json:"age"`
	Size        string           `json:"size,omitempty"`
	Description string           `json:"description,omitempty"`
	Status      domain.PetStatus `json:"status"`
	OwnerID     *string          `json:"owner_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
