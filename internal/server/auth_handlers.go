package server

import (
	"errors"
	"time"

	"admindesk/internal/auth"
	"admindesk/internal/middleware"
	"admindesk/internal/models"
	"admindesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(service.MsgFieldsRequired))
	}

	userID, err := s.memberService.Signup(c.UserContext(), req)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		middleware.Logger.ErrorContext(c.UserContext(), "signup failed", "error", err.Error())
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			&models.AppError{Code: "INTERNAL_ERROR", Message: service.MsgSignupFailed})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": service.MsgSignupSuccess,
		"userId":  userID,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.memberService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.issueSessionToken(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the cookie is
// cleared and the client discards its bearer copy.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// GetSession handles GET /api/auth/session. It reconstructs the session
// object from the token on every call; an anonymous request gets an empty
// session rather than an error.
func (s *Server) GetSession(c *fiber.Ctx) error {
	tokenString := c.Cookies(middleware.SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		}
	}
	if tokenString == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"session": nil})
	}

	claims, err := auth.ParseToken(tokenString, s.config.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"session": nil})
	}

	claims = auth.BackfillClaims(c.UserContext(), claims, s.userRepo.GetByEmail)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"session": auth.ProjectSession(claims),
	})
}

// issueSessionToken signs a token for the user and mirrors it into the
// session cookie used by page navigation.
func (s *Server) issueSessionToken(c *fiber.Ctx, user *models.User) (string, error) {
	identity := &auth.Identity{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	claims := auth.EnrichClaims(auth.TokenClaims{}, identity)

	token, err := auth.IssueToken(claims, s.config.JWTSecret)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
	})
	return token, nil
}
