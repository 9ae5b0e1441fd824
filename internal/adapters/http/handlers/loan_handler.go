package handlers

import (
	"errors"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/pagination"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles policy loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Request records a loan request against a policy
// @Summary Request loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RequestLoanInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Request(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.RequestLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PolicyHolderID == 0 || input.Amount <= 0 {
		return response.BadRequest(c, "Policy holder and a positive amount are required")
	}

	loan, err := h.loanService.RequestLoan(c.Context(), actor, &input)
	if err != nil {
		return loanError(c, err)
	}

	return response.Created(c, "Loan requested successfully", loan)
}

// List returns loans within the actor's branch scope
// @Summary List loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.ListLoans(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(loans, params, total))
}

// Get returns a single loan
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetLoan(c.Context(), actor, id)
	if err != nil {
		return loanError(c, err)
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// Decide approves or rejects a requested loan
// @Summary Decide loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body DecisionRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/decide [post]
func (h *LoanHandler) Decide(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Decide(c.Context(), actor, id, req.Approve, req.Remark)
	if err != nil {
		return loanError(c, err)
	}

	return response.Success(c, "Loan decided successfully", loan)
}

// RecordRepayment records a repayment against an approved loan
// @Summary Record loan repayment
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.RepaymentInput true "Repayment data"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/repayments [post]
func (h *LoanHandler) RecordRepayment(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.RepaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Amount <= 0 {
		return response.BadRequest(c, "Repayment amount must be positive")
	}

	loan, err := h.loanService.RecordRepayment(c.Context(), actor, id, &input)
	if err != nil {
		return loanError(c, err)
	}

	return response.Success(c, "Repayment recorded successfully", loan)
}

// ListRepayments returns the repayment history of a loan
// @Summary List loan repayments
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/repayments [get]
func (h *LoanHandler) ListRepayments(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	repayments, err := h.loanService.ListRepayments(c.Context(), actor, id)
	if err != nil {
		return loanError(c, err)
	}

	return response.Success(c, "Repayments retrieved successfully", repayments)
}

// loanError maps loan service errors to HTTP responses
func loanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, services.ErrPolicyHolderNotFound):
		return response.BadRequest(c, "Policy holder not found")
	case errors.Is(err, services.ErrOutOfScope):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrLoanNotRequested):
		return response.Conflict(c, "Loan has already been decided")
	case errors.Is(err, services.ErrLoanNotApproved):
		return response.Conflict(c, "Loan is not in approved state")
	case errors.Is(err, services.ErrRepaymentTooLarge):
		return response.BadRequest(c, "Repayment exceeds outstanding balance")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
