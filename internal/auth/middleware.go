package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-auth/internal/domain"
	apperrors "github.com/spec-kit/marketplace-auth/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, reconstructed entirely from
// token claims.
type Principal struct {
	UserID  string
	Account string
	Role    domain.Role
}

// AccessGuard validates bearer tokens on protected routes. All failure kinds
// collapse into one unauthorized response so callers cannot probe whether a
// token was expired, tampered, or absent; the distinction is logged only.
type AccessGuard struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAccessGuard constructs the guard.
func NewAccessGuard(tokens *TokenManager, logger *zap.Logger) *AccessGuard {
	return &AccessGuard{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (g *AccessGuard) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return g.deny(c, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return g.deny(c, "malformed authorization header")
	}

	claims, err := g.tokens.Parse(parts[1])
	if err != nil {
		return g.deny(c, err.Error())
	}

	c.Locals(principalKey, &Principal{
		UserID:  claims.UserID(),
		Account: claims.Account,
		Role:    claims.Role,
	})
	return c.Next()
}

func (g *AccessGuard) deny(c *fiber.Ctx, reason string) error {
	g.logger.Debug("request rejected",
		zap.String("path", c.Path()),
		zap.String("reason", reason),
	)
	return apperrors.NewUnauthorized("authentication required")
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireRole ensures the principal holds one of the allowed roles. With no
// arguments it only requires authentication.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
