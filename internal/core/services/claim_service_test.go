package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
)

type mockClaimRepo struct {
	mock.Mock
}

func (m *mockClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	return m.Called(ctx, claim).Error(0)
}

func (m *mockClaimRepo) GetByID(ctx context.Context, id uint) (*models.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *mockClaimRepo) Update(ctx context.Context, claim *models.Claim) error {
	return m.Called(ctx, claim).Error(0)
}

func (m *mockClaimRepo) List(ctx context.Context, scope guard.Scope, status string, offset, limit int) ([]*models.Claim, int64, error) {
	args := m.Called(ctx, scope, status, offset, limit)
	return args.Get(0).([]*models.Claim), args.Get(1).(int64), args.Error(2)
}

func (m *mockClaimRepo) CreateTransition(ctx context.Context, transition *models.ClaimTransition) error {
	return m.Called(ctx, transition).Error(0)
}

func (m *mockClaimRepo) ListTransitions(ctx context.Context, claimID uint) ([]*models.ClaimTransition, error) {
	args := m.Called(ctx, claimID)
	return args.Get(0).([]*models.ClaimTransition), args.Error(1)
}

type mockHolderRepo struct {
	mock.Mock
}

func (m *mockHolderRepo) Create(ctx context.Context, holder *models.PolicyHolder) error {
	return m.Called(ctx, holder).Error(0)
}

func (m *mockHolderRepo) GetByID(ctx context.Context, id uint) (*models.PolicyHolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PolicyHolder), args.Error(1)
}

func (m *mockHolderRepo) Update(ctx context.Context, holder *models.PolicyHolder) error {
	return m.Called(ctx, holder).Error(0)
}

func (m *mockHolderRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHolderRepo) List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.PolicyHolder, int64, error) {
	args := m.Called(ctx, scope, offset, limit)
	return args.Get(0).([]*models.PolicyHolder), args.Get(1).(int64), args.Error(2)
}

func (m *mockHolderRepo) ExistsByPolicyNo(ctx context.Context, policyNo string) (bool, error) {
	args := m.Called(ctx, policyNo)
	return args.Bool(0), args.Error(1)
}

func (m *mockHolderRepo) CreateDocument(ctx context.Context, doc *models.KYCDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockHolderRepo) GetDocumentByID(ctx context.Context, id uint) (*models.KYCDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KYCDocument), args.Error(1)
}

func (m *mockHolderRepo) UpdateDocument(ctx context.Context, doc *models.KYCDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockHolderRepo) ListDocuments(ctx context.Context, scope guard.Scope, holderID uint) ([]*models.KYCDocument, error) {
	args := m.Called(ctx, scope, holderID)
	return args.Get(0).([]*models.KYCDocument), args.Error(1)
}

func claimInBranch(branchID uint, status string) *models.Claim {
	return &models.Claim{ID: 10, ClaimNo: "CLM-1", BranchID: &branchID, Status: status}
}

func TestFileClaim_InheritsHolderBranch(t *testing.T) {
	claimRepo := new(mockClaimRepo)
	holderRepo := new(mockHolderRepo)
	svc := NewClaimService(claimRepo, holderRepo)

	branch := uint(1)
	holder := &models.PolicyHolder{ID: 3, PolicyNo: "POL-1", BranchID: &branch}
	holderRepo.On("GetByID", mock.Anything, uint(3)).Return(holder, nil)

	var created *models.Claim
	claimRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Claim")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Claim)
		}).
		Return(nil)
	claimRepo.On("CreateTransition", mock.Anything, mock.Anything).Return(nil)

	claim, err := svc.FileClaim(context.Background(), branchAdminActor(5, 1), &FileClaimInput{
		PolicyHolderID: 3,
		Amount:         50000,
		Reason:         "hospitalization",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ClaimStatusFiled, claim.Status)
	require.NotNil(t, created.BranchID)
	assert.Equal(t, uint(1), *created.BranchID)
}

func TestFileClaim_HolderOutsideBranchDenied(t *testing.T) {
	claimRepo := new(mockClaimRepo)
	holderRepo := new(mockHolderRepo)
	svc := NewClaimService(claimRepo, holderRepo)

	otherBranch := uint(2)
	holder := &models.PolicyHolder{ID: 3, BranchID: &otherBranch}
	holderRepo.On("GetByID", mock.Anything, uint(3)).Return(holder, nil)

	_, err := svc.FileClaim(context.Background(), branchAdminActor(5, 1), &FileClaimInput{
		PolicyHolderID: 3,
		Amount:         50000,
	})

	assert.ErrorIs(t, err, ErrOutOfScope)
	claimRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClaimTransitions_HappyPath(t *testing.T) {
	claimRepo := new(mockClaimRepo)
	holderRepo := new(mockHolderRepo)
	svc := NewClaimService(claimRepo, holderRepo)

	claim := claimInBranch(1, domain.ClaimStatusFiled)
	claimRepo.On("GetByID", mock.Anything, uint(10)).Return(claim, nil)
	claimRepo.On("Update", mock.Anything, claim).Return(nil)
	claimRepo.On("CreateTransition", mock.Anything, mock.Anything).Return(nil)

	actor := branchAdminActor(5, 1)

	updated, err := svc.StartReview(context.Background(), actor, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusUnderReview, updated.Status)

	updated, err = svc.Approve(context.Background(), actor, 10, "covered")
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusApproved, updated.Status)
	require.NotNil(t, updated.DecidedBy)
	assert.Equal(t, uint(5), *updated.DecidedBy)

	updated, err = svc.Settle(context.Background(), actor, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusSettled, updated.Status)
	assert.NotNil(t, updated.SettledAt)
}

func TestClaimTransitions_IllegalJumpsRejected(t *testing.T) {
	claimRepo := new(mockClaimRepo)
	holderRepo := new(mockHolderRepo)
	svc := NewClaimService(claimRepo, holderRepo)

	actor := branchAdminActor(5, 1)

	// FILED cannot be approved without review
	claimRepo.On("GetByID", mock.Anything, uint(10)).Return(claimInBranch(1, domain.ClaimStatusFiled), nil).Once()
	_, err := svc.Approve(context.Background(), actor, 10, "")
	assert.ErrorIs(t, err, ErrClaimInvalidTransition)

	// REJECTED is terminal
	claimRepo.On("GetByID", mock.Anything, uint(10)).Return(claimInBranch(1, domain.ClaimStatusRejected), nil).Once()
	_, err = svc.Settle(context.Background(), actor, 10)
	assert.ErrorIs(t, err, ErrClaimInvalidTransition)

	claimRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClaimTransition_OutOfBranchDenied(t *testing.T) {
	claimRepo := new(mockClaimRepo)
	holderRepo := new(mockHolderRepo)
	svc := NewClaimService(claimRepo, holderRepo)

	claimRepo.On("GetByID", mock.Anything, uint(10)).Return(claimInBranch(2, domain.ClaimStatusFiled), nil)

	_, err := svc.StartReview(context.Background(), branchAdminActor(5, 1), 10)

	assert.ErrorIs(t, err, ErrOutOfScope)
}
