package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"admindesk/internal/auth"
	"admindesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func publishedFixtures() []*models.BlogPost {
	return []*models.BlogPost{
		{
			ID:       primitive.NewObjectID(),
			Title:    "Next.js 16 업그레이드 가이드",
			Excerpt:  "Next.js 16으로 업그레이드하면서 겪었던 경험과 팁을 공유합니다.",
			Category: models.CategoryTech,
			Views:    245,
		},
		{
			ID:       primitive.NewObjectID(),
			Title:    "포트폴리오 프로젝트 - Admin Dashboard",
			Excerpt:  "Next.js와 NextAuth.js를 사용하여 만든 Admin Dashboard 프로젝트입니다.",
			Category: models.CategoryPortfolio,
			Views:    432,
		},
	}
}

func TestGetPosts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCount  int
		wantTitles []string
	}{
		{"no filters", "", 2, nil},
		{"category tech", "?category=tech", 1, []string{"Next.js 16 업그레이드 가이드"}},
		{"category tech empty search", "?category=tech&search=", 1, []string{"Next.js 16 업그레이드 가이드"}},
		{"search over excerpt", "?search=nextauth", 1, []string{"포트폴리오 프로젝트 - Admin Dashboard"}},
		{"no match", "?category=tech&search=포트폴리오", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			postRepo.On("ListPublished", mock.Anything).Return(publishedFixtures(), nil)
			s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
			app := newTestApp(s)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, float64(tt.wantCount), body["count"])

			if tt.wantTitles != nil {
				posts := body["posts"].([]any)
				for i, want := range tt.wantTitles {
					assert.Equal(t, want, posts[i].(map[string]any)["title"])
				}
			}
		})
	}
}

func TestGetPost(t *testing.T) {
	t.Run("read counts a view first", func(t *testing.T) {
		id := primitive.NewObjectID()
		postRepo := new(MockPostRepository)
		postRepo.On("IncrementViews", mock.Anything, id.Hex()).Return(nil).Once()
		postRepo.On("GetByID", mock.Anything, id.Hex()).
			Return(&models.BlogPost{ID: id, Title: "글", Views: 246}, nil).Once()

		s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/"+id.Hex(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(246), decodeBody(t, resp)["views"])
		postRepo.AssertExpectations(t)
	})

	t.Run("absent id", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("IncrementViews", mock.Anything, "missing").
			Return(models.NewNotFoundError("Post", "missing"))

		s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestGetPost_ConcurrentViews(t *testing.T) {
	id := primitive.NewObjectID()

	var mu sync.Mutex
	var views int64

	postRepo := new(MockPostRepository)
	postRepo.On("IncrementViews", mock.Anything, id.Hex()).Run(func(_ mock.Arguments) {
		mu.Lock()
		views++
		mu.Unlock()
	}).Return(nil)
	postRepo.On("GetByID", mock.Anything, id.Hex()).Return(&models.BlogPost{ID: id, Title: "글"}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
	app := newTestApp(s)

	// Two overlapping reads on a post must both be counted.
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/"+id.Hex(), nil))
			assert.NoError(t, err)
			if resp != nil {
				_ = resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(2), views)
}

func TestCreatePost(t *testing.T) {
	adminToken := bearerToken(t, auth.TokenClaims{
		UserID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin,
	})

	t.Run("requires authentication", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
		app := newTestApp(s)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/", map[string]any{"title": "t"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("author comes from the session", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.BlogPost) bool {
			return p.AuthorID == "admin-1" && p.Excerpt != ""
		})).Return(primitive.NewObjectID().Hex(), nil)

		s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
		app := newTestApp(s)

		req := jsonRequest(t, http.MethodPost, "/api/posts/", map[string]any{
			"title":     "새 글",
			"content":   "<p>본문입니다</p>",
			"category":  "tech",
			"author_id": "someone-else",
		})
		req.Header.Set("Authorization", adminToken)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
		postRepo.AssertExpectations(t)
	})

	t.Run("invalid category", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockStatsRepository))
		app := newTestApp(s)

		req := jsonRequest(t, http.MethodPost, "/api/posts/", map[string]any{
			"title": "t", "content": "c", "category": "travel",
		})
		req.Header.Set("Authorization", adminToken)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestUpdatePost(t *testing.T) {
	id := primitive.NewObjectID()
	token := bearerToken(t, auth.TokenClaims{UserID: "u1", Email: "u@example.com", Role: models.RoleUser})

	postRepo := new(MockPostRepository)
	postRepo.On("Update", mock.Anything, id.Hex(), mock.MatchedBy(func(in models.UpdateBlogPostInput) bool {
		return in.Title != nil && *in.Title == "수정된 제목" && in.Content == nil
	})).Return(nil)
	postRepo.On("GetByID", mock.Anything, id.Hex()).
		Return(&models.BlogPost{ID: id, Title: "수정된 제목"}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
	app := newTestApp(s)

	req := jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/posts/%s", id.Hex()), map[string]any{
		"title": "수정된 제목",
	})
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "수정된 제목", decodeBody(t, resp)["title"])
	postRepo.AssertExpectations(t)
}

func TestDeletePost(t *testing.T) {
	id := primitive.NewObjectID()
	token := bearerToken(t, auth.TokenClaims{UserID: "u1", Email: "u@example.com", Role: models.RoleUser})

	postRepo := new(MockPostRepository)
	postRepo.On("Delete", mock.Anything, id.Hex()).Return(nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockStatsRepository))
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+id.Hex(), nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	postRepo.AssertExpectations(t)
}
