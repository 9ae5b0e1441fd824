package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/adapters/persistence/repositories"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
	"silc-backoffice/internal/pkg/password"
)

// User service errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrInvalidRole         = errors.New("invalid role")
	ErrBranchRequired      = errors.New("branch is required for this role")
	ErrOutOfScope          = errors.New("record is outside your branch scope")
)

// UserService handles console user management.
// Non-super users are branch-owned: a branch admin only ever sees and
// mutates users of its own branch, via the guard scope.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	BranchID    *uint  `json:"branch_id"`
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
	BranchID    *uint   `json:"branch_id"`
	IsActive    *bool   `json:"is_active"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// ListUsers lists users within the actor's branch scope
func (s *UserService) ListUsers(ctx context.Context, actor *domain.Identity, offset, limit int) (*ListUsersOutput, error) {
	scope := guard.ScopeFor(actor)

	users, total, err := s.userRepo.List(ctx, scope, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// GetUser gets a user, enforcing the actor's branch scope
func (s *UserService) GetUser(ctx context.Context, actor *domain.Identity, id uint) (*models.UserResponse, error) {
	user, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// CreateUser creates a console user. A branch admin can only create
// non-super users confined to its own branch.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.Identity, input *CreateUserInput) (*models.UserResponse, error) {
	role := domain.Role(input.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	branchID := input.BranchID
	if actor.IsBranchAdmin() {
		if role == domain.RoleSuperAdmin {
			return nil, ErrOutOfScope
		}
		// Forced into the actor's own branch regardless of input
		branchID = actor.BranchID
	}
	if role != domain.RoleSuperAdmin && branchID == nil {
		return nil, ErrBranchRequired
	}
	if role == domain.RoleSuperAdmin {
		branchID = nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashed,
		DisplayName: input.DisplayName,
		Role:        string(role),
		BranchID:    branchID,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// UpdateUser updates a user within the actor's branch scope
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.Identity, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if id == actor.ID {
			return nil, ErrCannotChangeOwnRole
		}
		role := domain.Role(*input.Role)
		if !role.IsValid() {
			return nil, ErrInvalidRole
		}
		if actor.IsBranchAdmin() && role == domain.RoleSuperAdmin {
			return nil, ErrOutOfScope
		}
		user.Role = string(role)
	}

	if input.BranchID != nil {
		// Only a super admin may move a user between branches
		if actor.IsBranchAdmin() {
			return nil, ErrOutOfScope
		}
		user.BranchID = input.BranchID
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteUser soft deletes a user within the actor's branch scope
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.Identity, id uint) error {
	if id == actor.ID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}

// GetProfile gets the actor's own profile
func (s *UserService) GetProfile(ctx context.Context, actorID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// ChangePassword changes the actor's own password
func (s *UserService) ChangePassword(ctx context.Context, actorID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	if len(input.NewPassword) < password.MinLength {
		return errors.New("new password must be at least 8 characters")
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// loadScoped loads a user and re-checks the branch boundary on the
// loaded record, so a forged or stale id cannot reach a mutation.
func (s *UserService) loadScoped(ctx context.Context, actor *domain.Identity, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(user.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return user, nil
}
