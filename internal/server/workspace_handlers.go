package server

import (
	"admindesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// WorkspaceListPosts handles GET /api/workspace/posts
func (s *Server) WorkspaceListPosts(c *fiber.Ctx) error {
	posts := s.workspace(c).Posts.List()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// WorkspaceAddPost handles POST /api/workspace/posts
func (s *Server) WorkspaceAddPost(c *fiber.Ctx) error {
	var req models.BlogPost
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.Category != "" && !req.Category.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category must be one of portfolio, tech, other"))
	}

	post := s.workspace(c).Posts.Add(req)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// WorkspaceUpdatePost handles PUT /api/workspace/posts/:id
func (s *Server) WorkspaceUpdatePost(c *fiber.Ctx) error {
	var req models.UpdateBlogPostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, ok := s.workspace(c).Posts.Update(c.Params("id"), req)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// WorkspaceDeletePost handles DELETE /api/workspace/posts/:id
func (s *Server) WorkspaceDeletePost(c *fiber.Ctx) error {
	if !s.workspace(c).Posts.Delete(c.Params("id")) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// WorkspaceCounter handles GET /api/workspace/counter
func (s *Server) WorkspaceCounter(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"value": s.workspace(c).Counter.Value(),
	})
}

// WorkspaceCounterIncrement handles POST /api/workspace/counter/increment
func (s *Server) WorkspaceCounterIncrement(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"value": s.workspace(c).Counter.Increment(),
	})
}

// WorkspaceCounterDecrement handles POST /api/workspace/counter/decrement
func (s *Server) WorkspaceCounterDecrement(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"value": s.workspace(c).Counter.Decrement(),
	})
}

// WorkspaceCounterReset handles POST /api/workspace/counter/reset
func (s *Server) WorkspaceCounterReset(c *fiber.Ctx) error {
	s.workspace(c).Counter.Reset()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"value": int64(0),
	})
}
