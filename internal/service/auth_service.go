package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-auth/internal/auth"
	"github.com/spec-kit/marketplace-auth/internal/config"
	"github.com/spec-kit/marketplace-auth/internal/domain"
	"github.com/spec-kit/marketplace-auth/internal/events"
	"github.com/spec-kit/marketplace-auth/internal/observability"
	"github.com/spec-kit/marketplace-auth/internal/repository"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The lookup is an optimization only: the
// store's unique constraint on account decides concurrent registrations, and
// a duplicate insert surfaces as domain.ErrAccountConflict either way.
func (s *AuthService) Register(ctx context.Context, account, password string, role domain.Role) (*domain.User, error) {
	if _, err := s.users.GetByAccount(ctx, account); err == nil {
		return nil, domain.ErrAccountConflict
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Account:      account,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Account: user.Account, Role: user.Role},
	})
	return user, nil
}

// Login authenticates an account under a specific role. Role and active
// status are part of the lookup key, so the right password under the wrong
// role fails the same way as an unknown account.
func (s *AuthService) Login(ctx context.Context, account, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetActiveByAccountRole(ctx, account, role)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.metrics.RecordLogin(role.String(), false)
			return nil, "", time.Time{}, domain.ErrAccountNotFound
		}
		return nil, "", time.Time{}, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		s.metrics.RecordLogin(role.String(), false)
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Account, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.metrics.RecordLogin(role.String(), true)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventLoginSucceeded,
		UserID:  user.ID,
		Payload: events.LoginSucceededPayload{Account: user.Account, Role: user.Role},
	})
	return user, token, exp, nil
}

// Logout acknowledges the request without touching the token. Tokens are not
// tracked server-side, so there is nothing to invalidate; the client discards
// its copy and the token dies at expiry.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for guard usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
