package domain

import "time"

// Role controls what a user may do in the marketplace.
type Role string

const (
	RoleAdopter Role = "ADOPTER"
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdopter, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
