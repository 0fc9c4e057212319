package server

import (
	"admindesk/internal/models"
	"admindesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. Only published posts are returned, newest
// first, narrowed by the optional category and search query parameters.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.blogService.ListPosts(c.UserContext(), c.Query("category"), c.Query("search"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost handles GET /api/posts/:id. Each read bumps the view counter
// before fetching, so the response already reflects the view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.blogService.GetPost(c.UserContext(), c.Params("id"), true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// The author is whoever holds the session, never the request body.
	if claims, ok := currentClaims(c); ok {
		req.AuthorID = claims.UserID
	}

	post, err := s.blogService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id with a partial merge body.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req models.UpdateBlogPostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.blogService.UpdatePost(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.blogService.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}
