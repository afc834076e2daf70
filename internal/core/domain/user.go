package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleBroker = "broker"
	RoleUser   = "user"
)

// Role sets used to scope identity lookups. A lookup scoped to Admins only
// matches users whose role is admin, and so on. Everyone matches any
// registered user regardless of role.
var (
	Admins   = []string{RoleAdmin}
	Brokers  = []string{RoleBroker}
	Everyone = []string{RoleAdmin, RoleBroker, RoleUser}
)

// RoleSet maps a role name to the lookup set that grants it.
func RoleSet(role string) []string {
	switch role {
	case RoleAdmin:
		return Admins
	case RoleBroker:
		return Brokers
	default:
		return Everyone
	}
}

// User models a registered principal. Email is the identity key and is
// always stored lowercase.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
