package handlers

import (
	"errors"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/pagination"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PolicyHolderHandler handles policy holder and KYC endpoints
type PolicyHolderHandler struct {
	holderService *services.PolicyHolderService
}

// NewPolicyHolderHandler creates a new policy holder handler
func NewPolicyHolderHandler(holderService *services.PolicyHolderService) *PolicyHolderHandler {
	return &PolicyHolderHandler{holderService: holderService}
}

// VerifyDocumentRequest represents a KYC verification decision body
type VerifyDocumentRequest struct {
	Verified bool   `json:"verified"`
	Remark   string `json:"remark"`
}

// List returns policy holders within the actor's branch scope
// @Summary List policy holders
// @Tags PolicyHolders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /policy-holders [get]
func (h *PolicyHolderHandler) List(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)

	holders, total, err := h.holderService.ListHolders(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list policy holders")
	}

	return response.Success(c, "Policy holders retrieved successfully",
		pagination.NewResponse(holders, params, total))
}

// Get returns a single policy holder
// @Summary Get policy holder
// @Tags PolicyHolders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy holder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /policy-holders/{id} [get]
func (h *PolicyHolderHandler) Get(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid policy holder ID")
	}

	holder, err := h.holderService.GetHolder(c.Context(), actor, id)
	if err != nil {
		return holderError(c, err)
	}

	return response.Success(c, "Policy holder retrieved successfully", holder)
}

// Create enrolls a policy holder
// @Summary Enroll policy holder
// @Tags PolicyHolders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateHolderInput true "Policy holder data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /policy-holders [post]
func (h *PolicyHolderHandler) Create(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.CreateHolderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FullName == "" || input.ProductID == 0 {
		return response.BadRequest(c, "Full name and product are required")
	}

	holder, err := h.holderService.CreateHolder(c.Context(), actor, &input)
	if err != nil {
		return holderError(c, err)
	}

	return response.Created(c, "Policy holder enrolled successfully", holder)
}

// Update updates a policy holder
// @Summary Update policy holder
// @Tags PolicyHolders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy holder ID"
// @Param body body services.UpdateHolderInput true "Policy holder data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /policy-holders/{id} [put]
func (h *PolicyHolderHandler) Update(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid policy holder ID")
	}

	var input services.UpdateHolderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	holder, err := h.holderService.UpdateHolder(c.Context(), actor, id, &input)
	if err != nil {
		return holderError(c, err)
	}

	return response.Success(c, "Policy holder updated successfully", holder)
}

// Delete deletes a policy holder
// @Summary Delete policy holder
// @Tags PolicyHolders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy holder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /policy-holders/{id} [delete]
func (h *PolicyHolderHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid policy holder ID")
	}

	if err := h.holderService.DeleteHolder(c.Context(), actor, id); err != nil {
		return holderError(c, err)
	}

	return response.Success(c, "Policy holder deleted successfully", nil)
}

// AddDocument records a KYC document for a holder
// @Summary Add KYC document
// @Tags PolicyHolders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy holder ID"
// @Param body body services.KYCDocumentInput true "Document data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /policy-holders/{id}/documents [post]
func (h *PolicyHolderHandler) AddDocument(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid policy holder ID")
	}

	var input services.KYCDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.DocType == "" {
		return response.BadRequest(c, "Document type is required")
	}

	doc, err := h.holderService.AddDocument(c.Context(), actor, id, &input)
	if err != nil {
		return holderError(c, err)
	}

	return response.Created(c, "Document added successfully", doc)
}

// ListDocuments returns a holder's KYC documents
// @Summary List KYC documents
// @Tags PolicyHolders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy holder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /policy-holders/{id}/documents [get]
func (h *PolicyHolderHandler) ListDocuments(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid policy holder ID")
	}

	docs, err := h.holderService.ListDocuments(c.Context(), actor, id)
	if err != nil {
		return holderError(c, err)
	}

	return response.Success(c, "Documents retrieved successfully", docs)
}

// VerifyDocument decides a pending KYC document
// @Summary Verify KYC document
// @Tags PolicyHolders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body VerifyDocumentRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc-documents/{id}/verify [post]
func (h *PolicyHolderHandler) VerifyDocument(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var req VerifyDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.holderService.VerifyDocument(c.Context(), actor, id, req.Verified, req.Remark)
	if err != nil {
		return holderError(c, err)
	}

	return response.Success(c, "Document verified successfully", doc)
}

// holderError maps policy holder service errors to HTTP responses
func holderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPolicyHolderNotFound):
		return response.NotFound(c, "Policy holder not found")
	case errors.Is(err, services.ErrDocumentNotFound):
		return response.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrOutOfScope):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrProductNotFound):
		return response.BadRequest(c, "Insurance product not found")
	case errors.Is(err, services.ErrDocumentNotPending):
		return response.Conflict(c, "Document has already been decided")
	case errors.Is(err, services.ErrBranchRequired):
		return response.BadRequest(c, "Branch is required")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
