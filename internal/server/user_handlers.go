package server

import (
	"admindesk/internal/models"
	"admindesk/internal/repository"
	"admindesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMembers handles GET /api/users
func (s *Server) GetMembers(c *fiber.Ctx) error {
	members, err := s.memberService.ListMembers(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": members,
		"count": len(members),
	})
}

// GetMember handles GET /api/users/:id
func (s *Server) GetMember(c *fiber.Ctx) error {
	member, err := s.memberService.GetMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(member)
}

// CreateMember handles POST /api/users
func (s *Server) CreateMember(c *fiber.Ctx) error {
	var req service.CreateMemberInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	member, err := s.memberService.CreateMember(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateMember handles PUT /api/users/:id with a partial merge body.
func (s *Server) UpdateMember(c *fiber.Ctx) error {
	var req repository.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	member, err := s.memberService.UpdateMember(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(member)
}

// DeleteMember handles DELETE /api/users/:id. An admin cannot delete their
// own account.
func (s *Server) DeleteMember(c *fiber.Ctx) error {
	id := c.Params("id")
	if claims, ok := currentClaims(c); ok && claims.UserID == id {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Cannot delete your own account"))
	}

	if err := s.memberService.DeleteMember(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Member deleted",
	})
}
