package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"admindesk/internal/auth"
	"admindesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetDashboardStats(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("ListPublished", mock.Anything).Return([]*models.BlogPost{
		{ID: primitive.NewObjectID(), Views: 245, Published: true},
		{ID: primitive.NewObjectID(), Views: 432, Published: true},
	}, nil)

	userRepo := new(MockUserRepository)
	userRepo.On("Count", mock.Anything).Return(int64(3), nil)

	// The stored singleton lags behind the live numbers on purpose.
	statsRepo := new(MockStatsRepository)
	statsRepo.On("Get", mock.Anything).Return(&models.DashboardStats{
		ID: models.StatsDocID, TotalUsers: 2, TotalPosts: 2, TotalViews: 500,
	}, nil)

	s := newTestServer(userRepo, postRepo, statsRepo)
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.TokenClaims{
		UserID: "u1", Email: "user@example.com", Role: models.RoleUser,
	}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	live := body["live"].(map[string]any)
	stored := body["stored"].(map[string]any)

	assert.Equal(t, float64(3), live["total_users"])
	assert.Equal(t, float64(2), live["total_posts"])
	assert.Equal(t, float64(677), live["total_views"])
	assert.Equal(t, float64(500), stored["total_views"])
}

func TestUpdateDashboardStats(t *testing.T) {
	t.Run("merge write requires admin", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
		app := newTestApp(s)

		req := jsonRequest(t, http.MethodPut, "/api/dashboard/stats", map[string]int64{"total_views": 1000})
		req.Header.Set("Authorization", bearerToken(t, auth.TokenClaims{
			UserID: "u1", Email: "user@example.com", Role: models.RoleUser,
		}))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("admin partial merge", func(t *testing.T) {
		statsRepo := new(MockStatsRepository)
		statsRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(in models.UpdateStatsInput) bool {
			return in.TotalViews != nil && *in.TotalViews == 1000 && in.TotalUsers == nil
		})).Return(nil)
		statsRepo.On("Get", mock.Anything).Return(&models.DashboardStats{
			ID: models.StatsDocID, TotalViews: 1000,
		}, nil)

		s := newTestServer(new(MockUserRepository), new(MockPostRepository), statsRepo)
		app := newTestApp(s)

		req := jsonRequest(t, http.MethodPut, "/api/dashboard/stats", map[string]int64{"total_views": 1000})
		req.Header.Set("Authorization", adminToken(t))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1000), decodeBody(t, resp)["total_views"])
		statsRepo.AssertExpectations(t)
	})

	t.Run("empty body refreshes from live", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("ListPublished", mock.Anything).Return([]*models.BlogPost{{Views: 10}}, nil)
		userRepo := new(MockUserRepository)
		userRepo.On("Count", mock.Anything).Return(int64(1), nil)
		statsRepo := new(MockStatsRepository)
		statsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		s := newTestServer(userRepo, postRepo, statsRepo)
		app := newTestApp(s)

		req := jsonRequest(t, http.MethodPut, "/api/dashboard/stats", map[string]any{})
		req.Header.Set("Authorization", adminToken(t))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(10), decodeBody(t, resp)["total_views"])
		statsRepo.AssertExpectations(t)
	})
}
