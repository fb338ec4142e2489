package domain

import "time"

// Role classifies a user at registration time and never changes afterwards.
type Role int

const (
	RoleMerchant Role = 0
	RoleAdmin    Role = 1
	RoleCustomer Role = 2
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleMerchant, RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleMerchant:
		return "merchant"
	case RoleAdmin:
		return "admin"
	case RoleCustomer:
		return "customer"
	}
	return "unknown"
}

// User is the domain model for an account holder. Account is globally unique
// regardless of role; the same phone number cannot register twice.
type User struct {
	ID           string
	Account      string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
