package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardDecision(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		tokenValid bool
		want       GuardOutcome
	}{
		{"Login with valid token", "/login", true, GuardToDashboard},
		{"Login without token", "/login", false, GuardServe},
		{"Dashboard without token", "/dashboard", false, GuardToLogin},
		{"Dashboard with token", "/dashboard", true, GuardServe},
		{"Members subpage without token", "/members/new", false, GuardToLogin},
		{"Members with token", "/members", true, GuardServe},
		{"Public page without token", "/blog", false, GuardServe},
		{"Public page with token", "/blog", true, GuardServe},
		{"Root without token", "/", false, GuardServe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuardDecision(tt.path, tt.tokenValid))
		})
	}
}

func TestGuardExcluded(t *testing.T) {
	assert.True(t, GuardExcluded("/api/posts"))
	assert.True(t, GuardExcluded("/metrics"))
	assert.True(t, GuardExcluded("/health/ready"))
	assert.True(t, GuardExcluded("/favicon.ico"))
	assert.False(t, GuardExcluded("/dashboard"))
	assert.False(t, GuardExcluded("/login"))
}

func signTestToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "user1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRouteGuard(t *testing.T) {
	const secret = "test-secret"

	app := fiber.New()
	app.Use(RouteGuard(secret))
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("page")
	})

	t.Run("Protected path without token redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, LoginPath, resp.Header.Get("Location"))
	})

	t.Run("Login with valid cookie redirects to dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, secret)})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, DashboardPath, resp.Header.Get("Location"))
	})

	t.Run("Login with garbage token serves login page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-jwt"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Token signed with wrong secret is invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, "other-secret")})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, LoginPath, resp.Header.Get("Location"))
	})

	t.Run("API path is never intercepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
