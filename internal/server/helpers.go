package server

import (
	"errors"
	"time"

	"admindesk/internal/auth"
	"admindesk/internal/models"
	"admindesk/internal/state"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// workspaceCookie identifies the browser session owning a workspace. It is
// independent of authentication so a re-login keeps the same scratch state.
const workspaceCookie = "workspace_id"

// currentClaims returns the decoded token claims placed by AuthRequired.
func currentClaims(c *fiber.Ctx) (auth.TokenClaims, bool) {
	claims, ok := c.Locals("claims").(auth.TokenClaims)
	return claims, ok
}

// workspace resolves the caller's session workspace, minting the session
// cookie on first access.
func (s *Server) workspace(c *fiber.Ctx) *state.Session {
	id := c.Cookies(workspaceCookie)
	if id == "" {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     workspaceCookie,
			Value:    id,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(24 * time.Hour),
		})
	}
	return s.workspaces.Get(id)
}

// appErrorStatus maps an application error code to an HTTP status.
func appErrorStatus(code string) int {
	switch code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError converts a service error into the standard error
// response, mapping known application codes to their HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, appErrorStatus(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
