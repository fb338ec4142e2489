package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-auth/internal/config"
	"github.com/spec-kit/marketplace-auth/internal/domain"
	"github.com/spec-kit/marketplace-auth/internal/events"
	"github.com/spec-kit/marketplace-auth/internal/observability"
)

// fakeUserRepo is an in-memory stand-in for the Postgres repository. Like the
// real one, it enforces account uniqueness at insert time.
type fakeUserRepo struct {
	byAccount map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byAccount: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byAccount[user.Account]; exists {
		return domain.ErrAccountConflict
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	f.byAccount[user.Account] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byAccount {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByAccount(_ context.Context, account string) (*domain.User, error) {
	u, ok := f.byAccount[account]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUserRepo) GetActiveByAccountRole(_ context.Context, account string, role domain.Role) (*domain.User, error) {
	u, ok := f.byAccount[account]
	if !ok || u.Role != role || !u.IsActive {
		return nil, pgx.ErrNoRows
	}
	copy := *u
	return &copy, nil
}

// racingRepo simulates a concurrent registration: the pre-check sees no user,
// but the insert loses the race on the unique index.
type racingRepo struct {
	*fakeUserRepo
}

func (r *racingRepo) GetByAccount(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *racingRepo) Create(context.Context, *domain.User) error {
	return domain.ErrAccountConflict
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 120,
			BcryptCost:      4, // keep tests fast
		},
	}
}

func newTestService(deps AuthDependencies) *AuthService {
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics()
	}
	return NewAuthService(testConfig(), deps)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	s := newTestService(AuthDependencies{UserRepo: repo, Dispatcher: dispatcher})

	user, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "13800000000", user.Account)
	assert.Equal(t, domain.RoleMerchant, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NotEqual(t, "secret1", user.PasswordHash)

	require.Len(t, published, 1)
	assert.Equal(t, user.ID, published[0].UserID)
}

func TestRegister_DuplicateAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newTestService(AuthDependencies{UserRepo: repo})

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	// Same account under a different role still conflicts.
	_, err = s.Register(context.Background(), "13800000000", "other-pass", domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrAccountConflict)
}

func TestRegister_InsertLosesRace(t *testing.T) {
	t.Parallel()

	s := newTestService(AuthDependencies{UserRepo: &racingRepo{newFakeUserRepo()}})

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	assert.ErrorIs(t, err, domain.ErrAccountConflict)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newTestService(AuthDependencies{UserRepo: repo})

	created, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	user, token, exp, err := s.Login(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, time.Minute)

	claims, err := s.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID())
	assert.Equal(t, "13800000000", claims.Account)
	assert.Equal(t, domain.RoleMerchant, claims.Role)
}

func TestLogin_WrongRole(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newTestService(AuthDependencies{UserRepo: repo})

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	// Correct account and password under the wrong role behaves exactly like
	// a missing account, not like a bad password.
	_, _, _, err = s.Login(context.Background(), "13800000000", "secret1", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newTestService(AuthDependencies{UserRepo: repo})

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	_, _, _, err = s.Login(context.Background(), "13800000000", "secret2", domain.RoleMerchant)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	t.Parallel()

	s := newTestService(AuthDependencies{UserRepo: newFakeUserRepo()})

	_, _, _, err := s.Login(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newTestService(AuthDependencies{UserRepo: repo})

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)
	repo.byAccount["13800000000"].IsActive = false

	_, _, _, err = s.Login(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	t.Parallel()

	s := newTestService(AuthDependencies{UserRepo: newFakeUserRepo()})

	assert.NoError(t, s.Logout(context.Background(), ""))
	assert.NoError(t, s.Logout(context.Background(), "garbage"))

	_, err := s.Register(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)
	_, token, _, err := s.Login(context.Background(), "13800000000", "secret1", domain.RoleMerchant)
	require.NoError(t, err)

	// Logout does not invalidate anything; the token stays verifiable until
	// it expires on its own.
	assert.NoError(t, s.Logout(context.Background(), token))
	_, err = s.TokenManager().Parse(token)
	assert.NoError(t, err)
}
