package repositories

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// policyHolderRepository implements PolicyHolderRepository interface
type policyHolderRepository struct {
	db *gorm.DB
}

// NewPolicyHolderRepository creates a new policy holder repository
func NewPolicyHolderRepository(db *gorm.DB) PolicyHolderRepository {
	return &policyHolderRepository{db: db}
}

// Create creates a new policy holder
func (r *policyHolderRepository) Create(ctx context.Context, holder *models.PolicyHolder) error {
	return r.db.WithContext(ctx).Create(holder).Error
}

// GetByID gets a policy holder by ID with relations
func (r *policyHolderRepository) GetByID(ctx context.Context, id uint) (*models.PolicyHolder, error) {
	var holder models.PolicyHolder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Agent").
		Preload("Branch").
		Where("id = ?", id).
		First(&holder).Error
	if err != nil {
		return nil, err
	}
	return &holder, nil
}

// Update updates a policy holder
func (r *policyHolderRepository) Update(ctx context.Context, holder *models.PolicyHolder) error {
	return r.db.WithContext(ctx).Save(holder).Error
}

// Delete soft deletes a policy holder
func (r *policyHolderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PolicyHolder{}, id).Error
}

// List lists policy holders within the actor's branch scope with pagination
func (r *policyHolderRepository) List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.PolicyHolder, int64, error) {
	var holders []*models.PolicyHolder
	var total int64

	if err := scope.Apply(r.db.WithContext(ctx).Model(&models.PolicyHolder{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope.Apply(r.db.WithContext(ctx)).
		Preload("Product").
		Preload("Branch").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&holders).Error

	return holders, total, err
}

// ExistsByPolicyNo checks if policy number exists
func (r *policyHolderRepository) ExistsByPolicyNo(ctx context.Context, policyNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PolicyHolder{}).Where("policy_no = ?", policyNo).Count(&count).Error
	return count > 0, err
}

// CreateDocument creates a new KYC document
func (r *policyHolderRepository) CreateDocument(ctx context.Context, doc *models.KYCDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetDocumentByID gets a KYC document by ID
func (r *policyHolderRepository) GetDocumentByID(ctx context.Context, id uint) (*models.KYCDocument, error) {
	var doc models.KYCDocument
	err := r.db.WithContext(ctx).
		Preload("PolicyHolder").
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument updates a KYC document
func (r *policyHolderRepository) UpdateDocument(ctx context.Context, doc *models.KYCDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// ListDocuments lists a holder's KYC documents within the actor's branch scope
func (r *policyHolderRepository) ListDocuments(ctx context.Context, scope guard.Scope, holderID uint) ([]*models.KYCDocument, error) {
	var docs []*models.KYCDocument
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("policy_holder_id = ?", holderID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}
