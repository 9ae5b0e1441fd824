package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/adapters/persistence/repositories"
	"silc-backoffice/internal/config"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/pkg/jwt"
	"silc-backoffice/internal/pkg/password"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCorrupt     = errors.New("session state is corrupt")
)

// AuthService is the session store: it owns the authenticated identity
// and keeps the identity snapshot and token consistent. Both live in a
// single session row, so they are written and cleared atomically.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *domain.Identity `json:"user"`
	Token string           `json:"token"`
}

// Login authenticates a user and establishes a session.
// On any failure no state is mutated.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Build the identity record. Authorization claims come from here,
	// not from the token.
	identity := user.ToIdentity()

	// 5. Issue session token
	sessionID := uuid.New().String()
	token, err := jwt.GenerateSessionToken(user.ID, sessionID, s.cfg.JWT.Secret, s.cfg.JWT.SessionHours)
	if err != nil {
		return nil, err
	}

	// 6. Persist identity snapshot and token hash together
	if err := s.storeSession(ctx, user.ID, sessionID, token, identity); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s [%s]", user.Username, user.Role)

	return &AuthResponse{
		User:  identity,
		Token: token,
	}, nil
}

// Restore resolves a session token back to an identity. Corrupt session
// state (empty or unparsable identity snapshot, user mismatch, invalid
// role) is self-healed: the row is revoked and the caller is treated as
// unauthenticated. Never trusts persisted data blindly.
func (s *AuthService) Restore(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	claims, err := jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.IsExpired() {
		_ = s.sessionRepo.Revoke(ctx, session.ID)
		return nil, ErrTokenExpired
	}

	identity, ok := decodeIdentity(session, claims.UserID)
	if !ok {
		// Partial or inconsistent state: clear it and fall back to
		// unauthenticated rather than propagating an error.
		_ = s.sessionRepo.Revoke(ctx, session.ID)
		log.Printf("⚠️ Corrupt session %s cleared (user %d)", session.SessionID, session.UserID)
		return nil, ErrSessionCorrupt
	}

	return identity, nil
}

// Logout revokes the session. Revocation failure does not block the
// caller's local cleanup; it is logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessionRepo.RevokeByTokenHash(ctx, password.HashToken(token)); err != nil {
		log.Printf("⚠️ Failed to revoke session: %v", err)
		return
	}
	log.Printf("✅ User logged out")
}

// LogoutAll revokes all sessions for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// storeSession writes the session row
func (s *AuthService) storeSession(ctx context.Context, userID uint, sessionID, token string, identity *domain.Identity) error {
	snapshot, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	session := &models.Session{
		SessionID: sessionID,
		UserID:    userID,
		TokenHash: password.HashToken(token),
		Identity:  string(snapshot),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.SessionHours),
	}

	return s.sessionRepo.Create(ctx, session)
}

// decodeIdentity validates and unmarshals the persisted identity
// snapshot. Both halves of the session (snapshot and token hash) must be
// present and consistent with each other.
func decodeIdentity(session *models.Session, tokenUserID uint) (*domain.Identity, bool) {
	if session.Identity == "" || session.TokenHash == "" {
		return nil, false
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(session.Identity), &identity); err != nil {
		return nil, false
	}

	if identity.ID == 0 || identity.ID != session.UserID || identity.ID != tokenUserID {
		return nil, false
	}
	if !identity.Role.IsValid() {
		return nil, false
	}
	// A branch admin identity without a branch is inconsistent
	if identity.Role == domain.RoleBranchAdmin && identity.BranchID == nil {
		return nil, false
	}

	return &identity, true
}
