package handlers

import (
	"errors"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/pagination"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AgentHandler handles agent and agent application endpoints
type AgentHandler struct {
	agentService *services.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *services.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// DecisionRequest represents an approve/reject decision body
type DecisionRequest struct {
	Approve bool   `json:"approve"`
	Remark  string `json:"remark"`
}

// List returns agents within the actor's branch scope
// @Summary List agents
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /agents [get]
func (h *AgentHandler) List(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)

	agents, total, err := h.agentService.ListAgents(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list agents")
	}

	return response.Success(c, "Agents retrieved successfully",
		pagination.NewResponse(agents, params, total))
}

// Get returns a single agent
// @Summary Get agent
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [get]
func (h *AgentHandler) Get(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent ID")
	}

	agent, err := h.agentService.GetAgent(c.Context(), actor, id)
	if err != nil {
		return agentError(c, err)
	}

	return response.Success(c, "Agent retrieved successfully", agent)
}

// Create creates an agent
// @Summary Create agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAgentInput true "Agent data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agents [post]
func (h *AgentHandler) Create(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.CreateAgentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Code == "" || input.FullName == "" {
		return response.BadRequest(c, "Code and full name are required")
	}

	agent, err := h.agentService.CreateAgent(c.Context(), actor, &input)
	if err != nil {
		return agentError(c, err)
	}

	return response.Created(c, "Agent created successfully", agent)
}

// Update updates an agent
// @Summary Update agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agent ID"
// @Param body body services.UpdateAgentInput true "Agent data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [put]
func (h *AgentHandler) Update(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent ID")
	}

	var input services.UpdateAgentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agent, err := h.agentService.UpdateAgent(c.Context(), actor, id, &input)
	if err != nil {
		return agentError(c, err)
	}

	return response.Success(c, "Agent updated successfully", agent)
}

// Delete deletes an agent
// @Summary Delete agent
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [delete]
func (h *AgentHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent ID")
	}

	if err := h.agentService.DeleteAgent(c.Context(), actor, id); err != nil {
		return agentError(c, err)
	}

	return response.Success(c, "Agent deleted successfully", nil)
}

// SubmitApplication records an agent recruitment application
// @Summary Submit agent application
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agents/applications [post]
func (h *AgentHandler) SubmitApplication(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.ApplicantName == "" || input.Email == "" {
		return response.BadRequest(c, "Applicant name and email are required")
	}

	app, err := h.agentService.SubmitApplication(c.Context(), actor, &input)
	if err != nil {
		return agentError(c, err)
	}

	return response.Created(c, "Application submitted successfully", app)
}

// ListApplications returns applications within the actor's branch scope
// @Summary List agent applications
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /agents/applications [get]
func (h *AgentHandler) ListApplications(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)
	status := c.Query("status")

	apps, total, err := h.agentService.ListApplications(c.Context(), actor, status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully",
		pagination.NewResponse(apps, params, total))
}

// DecideApplication approves or rejects a pending application
// @Summary Decide agent application
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body DecisionRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /agents/applications/{id}/decide [post]
func (h *AgentHandler) DecideApplication(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.agentService.DecideApplication(c.Context(), actor, id, req.Approve, req.Remark)
	if err != nil {
		return agentError(c, err)
	}

	return response.Success(c, "Application decided successfully", app)
}

// agentError maps agent service errors to HTTP responses
func agentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAgentNotFound):
		return response.NotFound(c, "Agent not found")
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrOutOfScope):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrAgentCodeExists):
		return response.Conflict(c, "Agent code already exists")
	case errors.Is(err, services.ErrApplicationNotPending):
		return response.Conflict(c, "Application has already been decided")
	case errors.Is(err, services.ErrBranchRequired):
		return response.BadRequest(c, "Branch is required")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
