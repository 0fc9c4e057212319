package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// LoginPath is the page authenticated users are redirected away from.
	LoginPath = "/login"
	// DashboardPath is the landing page for authenticated users.
	DashboardPath = "/dashboard"
	// SessionCookie is the cookie carrying the bearer token for page navigation.
	SessionCookie = "session_token"
)

// protectedPrefixes is the fixed allow-list of path prefixes requiring
// authentication. Immutable, set at startup.
var protectedPrefixes = []string{"/dashboard", "/members"}

// guardExclusions mirrors the glob-style matcher exclusions: API routes and
// static assets are never intercepted.
var guardExclusions = []string{"/api", "/metrics", "/health", "/static", "/favicon.ico"}

// GuardOutcome is the route guard's decision for a request.
type GuardOutcome int

const (
	// GuardServe lets the request through to the page.
	GuardServe GuardOutcome = iota
	// GuardToLogin redirects the request to the login page.
	GuardToLogin
	// GuardToDashboard redirects the request to the dashboard.
	GuardToDashboard
)

// GuardDecision is the pure decision function of (path, token validity).
// It runs once per inbound request, before any page logic, and is terminal
// for that request when it redirects.
func GuardDecision(path string, tokenValid bool) GuardOutcome {
	if path == LoginPath {
		if tokenValid {
			return GuardToDashboard
		}
		return GuardServe
	}
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			if !tokenValid {
				return GuardToLogin
			}
			break
		}
	}
	return GuardServe
}

// GuardExcluded reports whether the path is outside the guard's scope.
func GuardExcluded(path string) bool {
	for _, prefix := range guardExclusions {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RouteGuard returns the page navigation middleware. It inspects the session
// token (cookie first, Authorization header as fallback) and applies
// GuardDecision to every non-excluded path.
func RouteGuard(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if GuardExcluded(path) {
			return c.Next()
		}

		switch GuardDecision(path, hasValidToken(c, jwtSecret)) {
		case GuardToDashboard:
			return c.Redirect(DashboardPath, fiber.StatusFound)
		case GuardToLogin:
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// hasValidToken reports whether the request carries a parseable, signed,
// unexpired session token.
func hasValidToken(c *fiber.Ctx, jwtSecret string) bool {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	return err == nil && token.Valid
}
