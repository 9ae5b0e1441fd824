package repositories

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// agentRepository implements AgentRepository interface
type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

// Create creates a new agent
func (r *agentRepository) Create(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// GetByID gets an agent by ID with its branch
func (r *agentRepository) GetByID(ctx context.Context, id uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Where("id = ?", id).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// Update updates an agent
func (r *agentRepository) Update(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Save(agent).Error
}

// Delete soft deletes an agent
func (r *agentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Agent{}, id).Error
}

// List lists agents within the actor's branch scope with pagination
func (r *agentRepository) List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.Agent, int64, error) {
	var agents []*models.Agent
	var total int64

	if err := scope.Apply(r.db.WithContext(ctx).Model(&models.Agent{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope.Apply(r.db.WithContext(ctx)).
		Preload("Branch").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&agents).Error

	return agents, total, err
}

// ExistsByCode checks if agent code exists
func (r *agentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Agent{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// CreateApplication creates a new agent application
func (r *agentRepository) CreateApplication(ctx context.Context, app *models.AgentApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetApplicationByID gets an agent application by ID
func (r *agentRepository) GetApplicationByID(ctx context.Context, id uint) (*models.AgentApplication, error) {
	var app models.AgentApplication
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Reviewer").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication updates an agent application
func (r *agentRepository) UpdateApplication(ctx context.Context, app *models.AgentApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// ListApplications lists agent applications within the actor's branch scope
func (r *agentRepository) ListApplications(ctx context.Context, scope guard.Scope, status string, offset, limit int) ([]*models.AgentApplication, int64, error) {
	var apps []*models.AgentApplication
	var total int64

	query := scope.Apply(r.db.WithContext(ctx).Model(&models.AgentApplication{}))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := scope.Apply(r.db.WithContext(ctx))
	if status != "" {
		listQuery = listQuery.Where("status = ?", status)
	}
	err := listQuery.
		Preload("Branch").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error

	return apps, total, err
}
