package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/config"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
	"silc-backoffice/internal/pkg/jwt"
	"silc-backoffice/internal/pkg/password"
)

// ---- mocks ----

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, scope, offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockSessionRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// ---- helpers ----

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			SessionHours: 12,
		},
	}
}

func testUser(t *testing.T) *models.User {
	t.Helper()
	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	branchID := uint(7)
	return &models.User{
		ID:          42,
		Username:    "somchai",
		Email:       "somchai@silc.co.th",
		Password:    hashed,
		DisplayName: "Somchai B.",
		Role:        string(domain.RoleBranchAdmin),
		BranchID:    &branchID,
		IsActive:    true,
		Branch:      &models.Branch{ID: 7, Name: "Chiang Mai Branch"},
	}
}

// ---- login ----

func TestLogin_StoresIdentityAndTokenTogether(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	user := testUser(t)
	userRepo.On("GetByUsername", mock.Anything, "somchai").Return(user, nil)

	var stored *models.Session
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Session")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Session)
		}).
		Return(nil)

	result, err := svc.Login(context.Background(), &LoginInput{Username: "somchai", Password: "secret123"})
	require.NoError(t, err)
	require.NotNil(t, result)

	// The session row carries both halves at once: identity snapshot and
	// token hash are written in the same Create.
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.TokenHash)
	assert.NotEmpty(t, stored.Identity)
	assert.Equal(t, password.HashToken(result.Token), stored.TokenHash)

	var snapshot domain.Identity
	require.NoError(t, json.Unmarshal([]byte(stored.Identity), &snapshot))
	assert.Equal(t, uint(42), snapshot.ID)
	assert.Equal(t, domain.RoleBranchAdmin, snapshot.Role)
	require.NotNil(t, snapshot.BranchID)
	assert.Equal(t, uint(7), *snapshot.BranchID)
	assert.Equal(t, "Chiang Mai Branch", snapshot.BranchName)

	// The token itself carries no authorization claims
	claims, err := jwt.ValidateSessionToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestLogin_WrongPasswordWritesNothing(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	userRepo.On("GetByUsername", mock.Anything, "somchai").Return(testUser(t), nil)

	_, err := svc.Login(context.Background(), &LoginInput{Username: "somchai", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	userRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), &LoginInput{Username: "nobody", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	user := testUser(t)
	user.IsActive = false
	userRepo.On("GetByUsername", mock.Anything, "somchai").Return(user, nil)

	_, err := svc.Login(context.Background(), &LoginInput{Username: "somchai", Password: "secret123"})

	assert.ErrorIs(t, err, ErrUserInactive)
}

// ---- restore ----

func loginAndCapture(t *testing.T, svc *AuthService, sessionRepo *mockSessionRepo, userRepo *mockUserRepo) (string, *models.Session) {
	t.Helper()

	user := testUser(t)
	userRepo.On("GetByUsername", mock.Anything, "somchai").Return(user, nil)

	var stored *models.Session
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Session")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Session)
			stored.ID = 1
		}).
		Return(nil)

	result, err := svc.Login(context.Background(), &LoginInput{Username: "somchai", Password: "secret123"})
	require.NoError(t, err)
	return result.Token, stored
}

func TestRestore_RoundTrip(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	token, stored := loginAndCapture(t, svc, sessionRepo, userRepo)
	sessionRepo.On("GetByTokenHash", mock.Anything, password.HashToken(token)).Return(stored, nil)

	identity, err := svc.Restore(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), identity.ID)
	assert.Equal(t, domain.RoleBranchAdmin, identity.Role)
	require.NotNil(t, identity.BranchID)
	assert.Equal(t, uint(7), *identity.BranchID)
}

func TestRestore_EmptyToken(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), new(mockSessionRepo), testConfig())

	_, err := svc.Restore(context.Background(), "")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRestore_GarbageToken(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), new(mockSessionRepo), testConfig())

	_, err := svc.Restore(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRestore_CorruptSnapshotSelfHeals(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	token, stored := loginAndCapture(t, svc, sessionRepo, userRepo)

	// Simulate a partially written or corrupted snapshot
	stored.Identity = "{not json"
	sessionRepo.On("GetByTokenHash", mock.Anything, password.HashToken(token)).Return(stored, nil)
	sessionRepo.On("Revoke", mock.Anything, stored.ID).Return(nil)

	_, err := svc.Restore(context.Background(), token)

	// The caller is treated as unauthenticated and the row is cleared
	assert.ErrorIs(t, err, ErrSessionCorrupt)
	sessionRepo.AssertCalled(t, "Revoke", mock.Anything, stored.ID)
}

func TestRestore_UserMismatchTreatedAsCorrupt(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	token, stored := loginAndCapture(t, svc, sessionRepo, userRepo)

	// Snapshot claims a different user than the session row
	other := domain.Identity{ID: 99, Role: domain.RoleSuperAdmin}
	raw, _ := json.Marshal(other)
	stored.Identity = string(raw)

	sessionRepo.On("GetByTokenHash", mock.Anything, password.HashToken(token)).Return(stored, nil)
	sessionRepo.On("Revoke", mock.Anything, stored.ID).Return(nil)

	_, err := svc.Restore(context.Background(), token)

	assert.ErrorIs(t, err, ErrSessionCorrupt)
}

func TestRestore_BranchAdminWithoutBranchTreatedAsCorrupt(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	token, stored := loginAndCapture(t, svc, sessionRepo, userRepo)

	broken := domain.Identity{ID: 42, Role: domain.RoleBranchAdmin, BranchID: nil}
	raw, _ := json.Marshal(broken)
	stored.Identity = string(raw)

	sessionRepo.On("GetByTokenHash", mock.Anything, password.HashToken(token)).Return(stored, nil)
	sessionRepo.On("Revoke", mock.Anything, stored.ID).Return(nil)

	_, err := svc.Restore(context.Background(), token)

	assert.ErrorIs(t, err, ErrSessionCorrupt)
}

func TestRestore_RevokedSessionNotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	token, _ := loginAndCapture(t, svc, sessionRepo, userRepo)

	// Repository only returns unrevoked rows; a revoked session looks gone
	sessionRepo.On("GetByTokenHash", mock.Anything, password.HashToken(token)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Restore(context.Background(), token)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// ---- logout ----

func TestLogout_RevocationFailureSwallowed(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	sessionRepo.On("RevokeByTokenHash", mock.Anything, mock.Anything).Return(gorm.ErrInvalidDB)

	// Must not panic or propagate: local cleanup proceeds regardless
	svc.Logout(context.Background(), "some-token")

	sessionRepo.AssertCalled(t, "RevokeByTokenHash", mock.Anything, mock.Anything)
}

func TestLogoutAll(t *testing.T) {
	userRepo := new(mockUserRepo)
	sessionRepo := new(mockSessionRepo)
	svc := NewAuthService(userRepo, sessionRepo, testConfig())

	sessionRepo.On("RevokeAllByUserID", mock.Anything, uint(42)).Return(nil)

	require.NoError(t, svc.LogoutAll(context.Background(), 42))
}
