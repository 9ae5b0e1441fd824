package handlers

import (
	"errors"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/pagination"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClaimHandler handles claim lifecycle endpoints
type ClaimHandler struct {
	claimService *services.ClaimService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// RemarkRequest carries an optional remark for a claim decision
type RemarkRequest struct {
	Remark string `json:"remark"`
}

// File files a claim against a policy
// @Summary File claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FileClaimInput true "Claim data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /claims [post]
func (h *ClaimHandler) File(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.FileClaimInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PolicyHolderID == 0 || input.Amount <= 0 {
		return response.BadRequest(c, "Policy holder and a positive amount are required")
	}

	claim, err := h.claimService.FileClaim(c.Context(), actor, &input)
	if err != nil {
		return claimError(c, err)
	}

	return response.Created(c, "Claim filed successfully", claim)
}

// List returns claims within the actor's branch scope
// @Summary List claims
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /claims [get]
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)
	status := c.Query("status")

	claims, total, err := h.claimService.ListClaims(c.Context(), actor, status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list claims")
	}

	return response.Success(c, "Claims retrieved successfully",
		pagination.NewResponse(claims, params, total))
}

// Get returns a single claim
// @Summary Get claim
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /claims/{id} [get]
func (h *ClaimHandler) Get(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.claimService.GetClaim(c.Context(), actor, id)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim retrieved successfully", claim)
}

// History returns the transition history of a claim
// @Summary Get claim history
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /claims/{id}/history [get]
func (h *ClaimHandler) History(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	history, err := h.claimService.GetHistory(c.Context(), actor, id)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim history retrieved successfully", history)
}

// StartReview moves a filed claim into review
// @Summary Start claim review
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/review [post]
func (h *ClaimHandler) StartReview(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.claimService.StartReview(c.Context(), actor, id)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim moved to review", claim)
}

// Approve approves a claim under review
// @Summary Approve claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param body body RemarkRequest false "Remark"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/approve [post]
func (h *ClaimHandler) Approve(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var req RemarkRequest
	_ = c.BodyParser(&req)

	claim, err := h.claimService.Approve(c.Context(), actor, id, req.Remark)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim approved", claim)
}

// Reject rejects a claim under review
// @Summary Reject claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param body body RemarkRequest false "Remark"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/reject [post]
func (h *ClaimHandler) Reject(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var req RemarkRequest
	_ = c.BodyParser(&req)

	claim, err := h.claimService.Reject(c.Context(), actor, id, req.Remark)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim rejected", claim)
}

// Settle marks an approved claim as paid out
// @Summary Settle claim
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/settle [post]
func (h *ClaimHandler) Settle(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.claimService.Settle(c.Context(), actor, id)
	if err != nil {
		return claimError(c, err)
	}

	return response.Success(c, "Claim settled", claim)
}

// claimError maps claim service errors to HTTP responses
func claimError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrClaimNotFound):
		return response.NotFound(c, "Claim not found")
	case errors.Is(err, services.ErrPolicyHolderNotFound):
		return response.BadRequest(c, "Policy holder not found")
	case errors.Is(err, services.ErrOutOfScope):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrClaimInvalidTransition):
		return response.Conflict(c, "Claim cannot move to that status")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
