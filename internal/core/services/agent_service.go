package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/adapters/persistence/repositories"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
)

// Agent errors
var (
	ErrAgentNotFound         = errors.New("agent not found")
	ErrAgentCodeExists       = errors.New("agent code already exists")
	ErrApplicationNotFound   = errors.New("agent application not found")
	ErrApplicationNotPending = errors.New("application has already been decided")
)

// AgentService handles agents and agent recruitment applications
type AgentService struct {
	agentRepo repositories.AgentRepository
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo repositories.AgentRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo}
}

// CreateAgentInput represents create agent input
type CreateAgentInput struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	BranchID *uint  `json:"branch_id"`
}

// UpdateAgentInput represents update agent input
type UpdateAgentInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// ApplicationInput represents agent application intake
type ApplicationInput struct {
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BranchID      *uint  `json:"branch_id"`
}

// ListAgents lists agents within the actor's branch scope
func (s *AgentService) ListAgents(ctx context.Context, actor *domain.Identity, offset, limit int) ([]*models.Agent, int64, error) {
	return s.agentRepo.List(ctx, guard.ScopeFor(actor), offset, limit)
}

// GetAgent gets an agent, enforcing the actor's branch scope
func (s *AgentService) GetAgent(ctx context.Context, actor *domain.Identity, id uint) (*models.Agent, error) {
	return s.loadScoped(ctx, actor, id)
}

// CreateAgent creates an agent. A branch admin's agents are always
// confined to the actor's own branch.
func (s *AgentService) CreateAgent(ctx context.Context, actor *domain.Identity, input *CreateAgentInput) (*models.Agent, error) {
	branchID := input.BranchID
	if actor.IsBranchAdmin() {
		branchID = actor.BranchID
	}
	if branchID == nil {
		return nil, ErrBranchRequired
	}

	exists, err := s.agentRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAgentCodeExists
	}

	agent := &models.Agent{
		Code:     input.Code,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		BranchID: branchID,
		IsActive: true,
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	log.Printf("✅ Agent created: %s (branch %d)", agent.Code, *branchID)
	return agent, nil
}

// UpdateAgent updates an agent within the actor's branch scope
func (s *AgentService) UpdateAgent(ctx context.Context, actor *domain.Identity, id uint, input *UpdateAgentInput) (*models.Agent, error) {
	agent, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		agent.FullName = *input.FullName
	}
	if input.Email != nil {
		agent.Email = *input.Email
	}
	if input.Phone != nil {
		agent.Phone = *input.Phone
	}
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// DeleteAgent soft deletes an agent within the actor's branch scope
func (s *AgentService) DeleteAgent(ctx context.Context, actor *domain.Identity, id uint) error {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return err
	}
	return s.agentRepo.Delete(ctx, id)
}

// SubmitApplication records a new agent recruitment application
func (s *AgentService) SubmitApplication(ctx context.Context, actor *domain.Identity, input *ApplicationInput) (*models.AgentApplication, error) {
	branchID := input.BranchID
	if actor.IsBranchAdmin() {
		branchID = actor.BranchID
	}
	if branchID == nil {
		return nil, ErrBranchRequired
	}

	app := &models.AgentApplication{
		ApplicantName: input.ApplicantName,
		Email:         input.Email,
		Phone:         input.Phone,
		BranchID:      branchID,
		Status:        domain.ApplicationStatusPending,
	}

	if err := s.agentRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications lists applications within the actor's branch scope
func (s *AgentService) ListApplications(ctx context.Context, actor *domain.Identity, status string, offset, limit int) ([]*models.AgentApplication, int64, error) {
	return s.agentRepo.ListApplications(ctx, guard.ScopeFor(actor), status, offset, limit)
}

// DecideApplication approves or rejects a pending application.
// Approval creates the agent record in the application's branch.
func (s *AgentService) DecideApplication(ctx context.Context, actor *domain.Identity, id uint, approve bool, remark string) (*models.AgentApplication, error) {
	app, err := s.agentRepo.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	// Branch boundary re-checked on the loaded record
	if !guard.ScopeFor(actor).AllowsRecord(app.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	if app.Status != domain.ApplicationStatusPending {
		return nil, ErrApplicationNotPending
	}

	now := time.Now()
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now
	app.Remark = remark

	if approve {
		app.Status = domain.ApplicationStatusApproved
		agent := &models.Agent{
			Code:     newRefNo("AGT"),
			FullName: app.ApplicantName,
			Email:    app.Email,
			Phone:    app.Phone,
			BranchID: app.BranchID,
			IsActive: true,
		}
		if err := s.agentRepo.Create(ctx, agent); err != nil {
			return nil, err
		}
		log.Printf("✅ Agent application %d approved, agent %s created", app.ID, agent.Code)
	} else {
		app.Status = domain.ApplicationStatusRejected
	}

	if err := s.agentRepo.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *AgentService) loadScoped(ctx context.Context, actor *domain.Identity, id uint) (*models.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(agent.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return agent, nil
}
