package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/domain"
)

func branchAdminActor(id, branchID uint) *domain.Identity {
	return &domain.Identity{ID: id, Role: domain.RoleBranchAdmin, BranchID: &branchID}
}

func superAdminActor() *domain.Identity {
	return &domain.Identity{ID: 1, Role: domain.RoleSuperAdmin}
}

func TestUpdateUser_ForgedIDOutsideBranchDenied(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	// The record lives in branch 2; the actor administers branch 1.
	otherBranch := uint(2)
	target := &models.User{ID: 9, Role: string(domain.RoleBranchAdmin), BranchID: &otherBranch}
	userRepo.On("GetByID", mock.Anything, uint(9)).Return(target, nil)

	name := "New Name"
	_, err := svc.UpdateUser(context.Background(), branchAdminActor(5, 1), 9, &UpdateUserInput{DisplayName: &name})

	assert.ErrorIs(t, err, ErrOutOfScope)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateUser_BranchAdminForcedIntoOwnBranch(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("ExistsByUsername", mock.Anything, "newbie").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "newbie@silc.co.th").Return(false, nil)

	var created *models.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).
		Return(nil)

	// Requested branch 3 is ignored for a branch 1 admin
	requested := uint(3)
	_, err := svc.CreateUser(context.Background(), branchAdminActor(5, 1), &CreateUserInput{
		Username: "newbie",
		Email:    "newbie@silc.co.th",
		Password: "secret123",
		Role:     string(domain.RoleBranchAdmin),
		BranchID: &requested,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	require.NotNil(t, created.BranchID)
	assert.Equal(t, uint(1), *created.BranchID)
}

func TestCreateUser_BranchAdminCannotMintSuperAdmin(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	_, err := svc.CreateUser(context.Background(), branchAdminActor(5, 1), &CreateUserInput{
		Username: "sneaky",
		Email:    "sneaky@silc.co.th",
		Password: "secret123",
		Role:     string(domain.RoleSuperAdmin),
	})

	assert.ErrorIs(t, err, ErrOutOfScope)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_SuperAdminRowCarriesNoBranch(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("ExistsByUsername", mock.Anything, "hq").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "hq@silc.co.th").Return(false, nil)

	var created *models.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).
		Return(nil)

	branch := uint(2)
	_, err := svc.CreateUser(context.Background(), superAdminActor(), &CreateUserInput{
		Username: "hq",
		Email:    "hq@silc.co.th",
		Password: "secret123",
		Role:     string(domain.RoleSuperAdmin),
		BranchID: &branch,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Nil(t, created.BranchID)
}

func TestUpdateUser_CannotChangeOwnRole(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	branch := uint(1)
	self := &models.User{ID: 5, Role: string(domain.RoleBranchAdmin), BranchID: &branch}
	userRepo.On("GetByID", mock.Anything, uint(5)).Return(self, nil)

	role := string(domain.RoleSuperAdmin)
	_, err := svc.UpdateUser(context.Background(), branchAdminActor(5, 1), 5, &UpdateUserInput{Role: &role})

	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestDeleteUser_SelfDeleteDenied(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	err := svc.DeleteUser(context.Background(), branchAdminActor(5, 1), 5)

	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
