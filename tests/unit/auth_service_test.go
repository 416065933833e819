package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"smart-campus/internal/config"
	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/auth"
	"smart-campus/tests/mocks"
)

type sessionRepoMock struct {
	mock.Mock
}

func (m *sessionRepoMock) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *sessionRepoMock) GetByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *sessionRepoMock) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *sessionRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *sessionRepoMock) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("New Accounts Are Students", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(sessionRepoMock)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("ExistsByUsername", ctx, "alice").Return(false, nil).Once()
		userRepo.On("ExistsByEmail", ctx, "alice@campus.edu").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == string(domain.RoleStudent) &&
				!u.CanCreateEvents && !u.CanCreateClubs && u.IsActive
		})).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, domain.CreateUserInput{
			Username: "alice",
			Email:    "alice@campus.edu",
			Password: "supersecret",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(domain.RoleStudent), user.Role)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(sessionRepoMock), nil, testConfig())

		userRepo.On("ExistsByUsername", ctx, "alice").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Username: "alice",
			Email:    "alice@campus.edu",
			Password: "supersecret",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Short Password", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), new(sessionRepoMock), nil, testConfig())

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Username: "alice",
			Email:    "alice@campus.edu",
			Password: "short",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(sessionRepoMock)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		alice := student("alice")
		alice.PasswordHash = string(hash)

		userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Username: "alice", Password: "supersecret"})

		assert.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(sessionRepoMock), nil, testConfig())

		alice := student("alice")
		alice.PasswordHash = string(hash)
		userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Deactivated Account", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(sessionRepoMock), nil, testConfig())

		alice := student("alice")
		alice.PasswordHash = string(hash)
		alice.IsActive = false
		userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "alice", Password: "supersecret"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Unknown User", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(sessionRepoMock), nil, testConfig())

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(sessionRepoMock)
	svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

	alice := student("alice")
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	alice.PasswordHash = string(hash)

	userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()
	sessionRepo.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Username: "alice", Password: "supersecret"})
	assert.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
