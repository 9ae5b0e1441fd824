package handlers

import (
	"errors"

	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler handles branch and product master data endpoints
type MasterHandler struct {
	masterService *services.MasterService
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(masterService *services.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// ListBranches returns active branches
// @Summary List branches
// @Tags Masters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /masters/branches [get]
func (h *MasterHandler) ListBranches(c *fiber.Ctx) error {
	branches, err := h.masterService.ListBranches(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list branches")
	}
	return response.Success(c, "Branches retrieved successfully", branches)
}

// CreateBranch creates a branch
// @Summary Create branch
// @Tags Masters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BranchInput true "Branch data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /masters/branches [post]
func (h *MasterHandler) CreateBranch(c *fiber.Ctx) error {
	var input services.BranchInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Code == "" || input.Name == "" {
		return response.BadRequest(c, "Code and name are required")
	}

	branch, err := h.masterService.CreateBranch(c.Context(), &input)
	if err != nil {
		return masterError(c, err)
	}

	return response.Created(c, "Branch created successfully", branch)
}

// UpdateBranch updates a branch
// @Summary Update branch
// @Tags Masters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Param body body services.BranchInput true "Branch data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /masters/branches/{id} [put]
func (h *MasterHandler) UpdateBranch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}

	var input services.BranchInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	branch, err := h.masterService.UpdateBranch(c.Context(), id, &input)
	if err != nil {
		return masterError(c, err)
	}

	return response.Success(c, "Branch updated successfully", branch)
}

// DeleteBranch deletes a branch
// @Summary Delete branch
// @Tags Masters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /masters/branches/{id} [delete]
func (h *MasterHandler) DeleteBranch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}

	if err := h.masterService.DeleteBranch(c.Context(), id); err != nil {
		return masterError(c, err)
	}

	return response.Success(c, "Branch deleted successfully", nil)
}

// ListProducts returns active insurance products
// @Summary List insurance products
// @Tags Masters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /masters/products [get]
func (h *MasterHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.masterService.ListProducts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}
	return response.Success(c, "Products retrieved successfully", products)
}

// CreateProduct creates an insurance product
// @Summary Create insurance product
// @Tags Masters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProductInput true "Product data"
// @Success 201 {object} response.Response
// @Router /masters/products [post]
func (h *MasterHandler) CreateProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Code == "" || input.Name == "" {
		return response.BadRequest(c, "Code and name are required")
	}

	product, err := h.masterService.CreateProduct(c.Context(), &input)
	if err != nil {
		return masterError(c, err)
	}

	return response.Created(c, "Product created successfully", product)
}

// UpdateProduct updates an insurance product
// @Summary Update insurance product
// @Tags Masters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.ProductInput true "Product data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /masters/products/{id} [put]
func (h *MasterHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.masterService.UpdateProduct(c.Context(), id, &input)
	if err != nil {
		return masterError(c, err)
	}

	return response.Success(c, "Product updated successfully", product)
}

// DeleteProduct deletes an insurance product
// @Summary Delete insurance product
// @Tags Masters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /masters/products/{id} [delete]
func (h *MasterHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.masterService.DeleteProduct(c.Context(), id); err != nil {
		return masterError(c, err)
	}

	return response.Success(c, "Product deleted successfully", nil)
}

// masterError maps master data service errors to HTTP responses
func masterError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrBranchNotFound):
		return response.NotFound(c, "Branch not found")
	case errors.Is(err, services.ErrProductNotFound):
		return response.NotFound(c, "Product not found")
	case errors.Is(err, services.ErrBranchCodeExists):
		return response.Conflict(c, "Branch code already exists")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
