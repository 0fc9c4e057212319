package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"admindesk/internal/auth"
	"admindesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userToken(t *testing.T) string {
	return bearerToken(t, auth.TokenClaims{
		UserID: "u1", Email: "user@example.com", Name: "사용자", Role: models.RoleUser,
	})
}

// workspaceRequest sends an authenticated request carrying the workspace
// session cookie.
func workspaceRequest(t *testing.T, app *fiber.App, method, target, token, sessionID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", token)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: workspaceCookie, Value: sessionID})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWorkspacePosts_SeededFromFixtures(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
	app := newTestApp(s)

	resp := workspaceRequest(t, app, http.MethodGet, "/api/workspace/posts", userToken(t), "session-a")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
	posts := body["posts"].([]any)
	assert.Equal(t, "Next.js 16 업그레이드 가이드", posts[0].(map[string]any)["title"])
}

func TestWorkspaceCounter_PerSession(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
	app := newTestApp(s)
	token := userToken(t)

	// Two increments in session a.
	for i := 0; i < 2; i++ {
		resp := workspaceRequest(t, app, http.MethodPost, "/api/workspace/counter/increment", token, "session-a")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := workspaceRequest(t, app, http.MethodGet, "/api/workspace/counter", token, "session-a")
	assert.Equal(t, float64(2), decodeBody(t, resp)["value"])

	// Session b starts from zero.
	resp = workspaceRequest(t, app, http.MethodGet, "/api/workspace/counter", token, "session-b")
	assert.Equal(t, float64(0), decodeBody(t, resp)["value"])

	// Decrement and reset.
	resp = workspaceRequest(t, app, http.MethodPost, "/api/workspace/counter/decrement", token, "session-a")
	assert.Equal(t, float64(1), decodeBody(t, resp)["value"])

	resp = workspaceRequest(t, app, http.MethodPost, "/api/workspace/counter/reset", token, "session-a")
	assert.Equal(t, float64(0), decodeBody(t, resp)["value"])
}

func TestWorkspaceCounter_MintsCookie(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
	app := newTestApp(s)

	resp := workspaceRequest(t, app, http.MethodGet, "/api/workspace/counter", userToken(t), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer func() { _ = resp.Body.Close() }()

	var minted bool
	for _, c := range resp.Cookies() {
		if c.Name == workspaceCookie && c.Value != "" {
			minted = true
		}
	}
	assert.True(t, minted)
}

func TestWorkspacePosts_CRUD(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
	app := newTestApp(s)
	token := userToken(t)

	// Add.
	req := jsonRequest(t, http.MethodPost, "/api/workspace/posts", map[string]any{
		"title":    "임시 글",
		"category": "other",
	})
	req.Header.Set("Authorization", token)
	req.AddCookie(&http.Cookie{Name: workspaceCookie, Value: "session-crud"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)
	require.NotEmpty(t, id)

	// Update.
	req = jsonRequest(t, http.MethodPut, "/api/workspace/posts/"+id, map[string]any{
		"title": "수정된 임시 글",
	})
	req.Header.Set("Authorization", token)
	req.AddCookie(&http.Cookie{Name: workspaceCookie, Value: "session-crud"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "수정된 임시 글", decodeBody(t, resp)["title"])

	// Delete.
	resp = workspaceRequest(t, app, http.MethodDelete, "/api/workspace/posts/"+id, token, "session-crud")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Deleting again is a 404.
	resp = workspaceRequest(t, app, http.MethodDelete, "/api/workspace/posts/"+id, token, "session-crud")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// The two seeded fixtures are still there.
	resp = workspaceRequest(t, app, http.MethodGet, "/api/workspace/posts", token, "session-crud")
	assert.Equal(t, float64(2), decodeBody(t, resp)["count"])
}

func TestWorkspaceAddPost_Validation(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
	app := newTestApp(s)

	req := jsonRequest(t, http.MethodPost, "/api/workspace/posts", map[string]any{
		"category": "tech",
	})
	req.Header.Set("Authorization", userToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
