package dto

import (
	"regexp"
	"time"

	"github.com/spec-kit/marketplace-auth/internal/domain"
	"github.com/spec-kit/marketplace-auth/pkg/validate"
)

// Accounts are CN mobile numbers.
var accountPattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r RegisterRequest) Validate() map[string]any {
	return validate.Apply(
		validate.Field{Name: "account", Value: r.Account, Rules: []validate.Rule{
			validate.Required(),
			validate.Matches(accountPattern, "must be a valid mobile number"),
		}},
		validate.Field{Name: "password", Value: r.Password, Rules: []validate.Rule{
			validate.Required(),
			validate.MinLen(6),
		}},
		validate.Field{Name: "role", Value: r.Role, Rules: []validate.Rule{
			validate.In(int(domain.RoleMerchant), int(domain.RoleAdmin), int(domain.RoleCustomer)),
		}},
	)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r LoginRequest) Validate() map[string]any {
	return validate.Apply(
		validate.Field{Name: "account", Value: r.Account, Rules: []validate.Rule{
			validate.Required(),
		}},
		validate.Field{Name: "password", Value: r.Password, Rules: []validate.Rule{
			validate.Required(),
		}},
		validate.Field{Name: "role", Value: r.Role, Rules: []validate.Rule{
			validate.In(int(domain.RoleMerchant), int(domain.RoleAdmin), int(domain.RoleCustomer)),
		}},
	)
}

// UserResponse is the public projection of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID        string      `json:"id"`
	Account   string      `json:"account"`
	Role      domain.Role `json:"role"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
}

// NewUserResponse projects a domain user, including its creation time.
func NewUserResponse(user *domain.User) UserResponse {
	createdAt := user.CreatedAt
	return UserResponse{
		ID:        user.ID,
		Account:   user.Account,
		Role:      user.Role,
		CreatedAt: &createdAt,
	}
}

// NewUserSummary projects a domain user without the creation time, as
// returned by login.
func NewUserSummary(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Account: user.Account,
		Role:    user.Role,
	}
}

// AuthResponse standard response for token-issuing endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
