package domain

import "time"

// PetStatus enumerates adoption availability.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "AVAILABLE"
	PetStatusAdopted   PetStatus = "ADOPTED"
)

// PetType enumerates supported species.
type PetType string

const (
	PetTypeDog    PetType = "DOG"
	PetTypeCat    PetType = "CAT"
	PetTypeBird   PetType = "BIRD"
	PetTypeRabbit PetType = "RABBIT"
	PetTypeOther  PetType = "OTHER"
)

// Pet is the aggregate for animals listed on the marketplace.
// OwnerID is nil for pets not yet bound to an account.
type Pet struct {
	ID          string
	Name        string
	Type        PetType
	Breed       string
	Gender      string
	Age         int
	Size        string
	Description string
	Status      PetStatus
	OwnerID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
