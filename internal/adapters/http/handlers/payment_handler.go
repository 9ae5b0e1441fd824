package handlers

import (
	"errors"
	"strconv"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/pagination"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles premium payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Collect records a premium payment
// @Summary Collect premium
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CollectPremiumInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Collect(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	var input services.CollectPremiumInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PolicyHolderID == 0 || input.PeriodMonth == "" {
		return response.BadRequest(c, "Policy holder and period month are required")
	}

	payment, err := h.paymentService.CollectPremium(c.Context(), actor, &input)
	if err != nil {
		return paymentError(c, err)
	}

	return response.Created(c, "Premium collected successfully", payment)
}

// List returns premium payments within the actor's branch scope
// @Summary List premium payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param policy_holder_id query int false "Filter by policy holder"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	params := pagination.GetParams(c)

	holderID, _ := strconv.ParseUint(c.Query("policy_holder_id", "0"), 10, 32)

	payments, total, err := h.paymentService.ListPayments(c.Context(), actor, uint(holderID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully",
		pagination.NewResponse(payments, params, total))
}

// Get returns a single premium payment
// @Summary Get premium payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.GetPayment(c.Context(), actor, id)
	if err != nil {
		return paymentError(c, err)
	}

	return response.Success(c, "Payment retrieved successfully", payment)
}

// paymentError maps payment service errors to HTTP responses
func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		return response.NotFound(c, "Payment not found")
	case errors.Is(err, services.ErrPolicyHolderNotFound):
		return response.BadRequest(c, "Policy holder not found")
	case errors.Is(err, services.ErrOutOfScope):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrInvalidAmount):
		return response.BadRequest(c, "Payment amount must be positive")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
