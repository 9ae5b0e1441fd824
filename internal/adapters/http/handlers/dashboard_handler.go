package handlers

import (
	"time"

	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the console landing page figures
// @Summary Dashboard summary
// @Description Scoped counts for the console landing page
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Period month (YYYY-MM), defaults to current"
// @Success 200 {object} response.Response
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	actor := middleware.IdentityFromCtx(c)

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	summary, err := h.dashboardService.GetSummary(c.Context(), actor, month)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", summary)
}
