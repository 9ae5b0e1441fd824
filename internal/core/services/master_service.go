package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/adapters/persistence/repositories"
)

// Master data errors
var (
	ErrBranchNotFound   = errors.New("branch not found")
	ErrBranchCodeExists = errors.New("branch code already exists")
)

// MasterService handles branch and product master data.
// Master data is not branch-scoped: every authenticated actor may read
// it, and only super admins may change it (enforced at the route).
type MasterService struct {
	branchRepo  repositories.BranchRepository
	productRepo repositories.ProductRepository
}

// NewMasterService creates a new master data service
func NewMasterService(
	branchRepo repositories.BranchRepository,
	productRepo repositories.ProductRepository,
) *MasterService {
	return &MasterService{
		branchRepo:  branchRepo,
		productRepo: productRepo,
	}
}

// BranchInput represents branch create/update input
type BranchInput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

// ProductInput represents product create/update input
type ProductInput struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePremium float64 `json:"base_premium"`
	IsActive    *bool   `json:"is_active"`
}

// ListBranches lists active branches
func (s *MasterService) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	return s.branchRepo.ListActive(ctx)
}

// CreateBranch creates a branch
func (s *MasterService) CreateBranch(ctx context.Context, input *BranchInput) (*models.Branch, error) {
	exists, err := s.branchRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBranchCodeExists
	}

	branch := &models.Branch{
		Code:     input.Code,
		Name:     input.Name,
		Address:  input.Address,
		IsActive: true,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	log.Printf("✅ Branch created: %s (%s)", branch.Name, branch.Code)
	return branch, nil
}

// UpdateBranch updates a branch
func (s *MasterService) UpdateBranch(ctx context.Context, id uint, input *BranchInput) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		branch.Name = input.Name
	}
	if input.Address != "" {
		branch.Address = input.Address
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch soft deletes a branch
func (s *MasterService) DeleteBranch(ctx context.Context, id uint) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBranchNotFound
		}
		return err
	}
	return s.branchRepo.Delete(ctx, id)
}

// ListProducts lists active insurance products
func (s *MasterService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// CreateProduct creates an insurance product
func (s *MasterService) CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error) {
	product := &models.Product{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		BasePremium: input.BasePremium,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product created: %s (%s)", product.Name, product.Code)
	return product, nil
}

// UpdateProduct updates an insurance product
func (s *MasterService) UpdateProduct(ctx context.Context, id uint, input *ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.BasePremium > 0 {
		product.BasePremium = input.BasePremium
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes an insurance product
func (s *MasterService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
