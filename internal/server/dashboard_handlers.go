package server

import (
	"admindesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats handles GET /api/dashboard/stats. Both the live
// recompute and the stored singleton are returned; the two sources can
// drift between refreshes, and exposing both makes the drift visible
// instead of hiding it.
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	live, err := s.dashboardService.Overview(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	stored, err := s.dashboardService.Stored(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"live":   live,
		"stored": stored,
	})
}

// UpdateDashboardStats handles PUT /api/dashboard/stats with a partial merge
// body. An empty body refreshes the singleton from the live recompute.
func (s *Server) UpdateDashboardStats(c *fiber.Ctx) error {
	var req models.UpdateStatsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.TotalUsers == nil && req.TotalPosts == nil && req.TotalViews == nil {
		stats, err := s.dashboardService.Refresh(c.UserContext())
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(stats)
	}

	stats, err := s.dashboardService.UpdateStored(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
