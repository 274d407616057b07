package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodconnect/internal/api/dto"
	"github.com/spec-kit/bloodconnect/internal/service"
)

// DashboardHandler serves the landing page summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Home GET /.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		TotalDonors:     summary.TotalDonors,
		PendingRequests: summary.PendingRequests,
		RecentRequests:  bloodRequestResponses(summary.RecentRequests),
	}})
}
