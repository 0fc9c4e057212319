package server

import (
	"time"

	"admindesk/internal/auth"
	"admindesk/internal/middleware"
	"admindesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// oauthStateCookie carries the anti-CSRF state between the redirect and the
// callback.
const oauthStateCookie = "oauth_state"

// OAuthRedirect handles GET /api/auth/oauth/:provider. It sends the browser
// to the provider's consent page with a fresh state nonce.
func (s *Server) OAuthRedirect(c *fiber.Ctx) error {
	provider, ok := s.providers[c.Params("provider")]
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("OAuth provider", c.Params("provider")))
	}

	nonce := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    nonce,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
	})

	return c.Redirect(provider.Config.AuthCodeURL(nonce), fiber.StatusFound)
}

// OAuthCallback handles GET /api/auth/oauth/:provider/callback. It verifies
// the state nonce, exchanges the code, resolves the provider identity to a
// local account (creating one on first login), and issues a session token.
func (s *Server) OAuthCallback(c *fiber.Ctx) error {
	provider, ok := s.providers[c.Params("provider")]
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("OAuth provider", c.Params("provider")))
	}

	nonce := c.Cookies(oauthStateCookie)
	if nonce == "" || c.Query("state") != nonce {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("OAuth state mismatch"))
	}
	c.Cookie(&fiber.Cookie{
		Name:    oauthStateCookie,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})

	code := c.Query("code")
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing authorization code"))
	}

	identity, err := provider.Exchange(c.UserContext(), code)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "oauth exchange failed",
			"provider", provider.Name, "error", err.Error())
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("OAuth exchange failed"))
	}

	user, err := s.memberService.FindOrCreateOAuth(c.UserContext(), auth.Identity{
		Email: identity.Email,
		Name:  identity.Name,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.issueSessionToken(c, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect(middleware.DashboardPath, fiber.StatusFound)
}
