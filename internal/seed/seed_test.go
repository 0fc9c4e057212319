package seed

import (
	"testing"

	"admindesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePosts(t *testing.T) {
	posts := SamplePosts()
	require.Len(t, posts, 2)

	assert.Equal(t, "Next.js 16 업그레이드 가이드", posts[0].Title)
	assert.Equal(t, models.CategoryTech, posts[0].Category)
	assert.Equal(t, int64(245), posts[0].Views)

	assert.Equal(t, "포트폴리오 프로젝트 - Admin Dashboard", posts[1].Title)
	assert.Equal(t, models.CategoryPortfolio, posts[1].Category)
	assert.Equal(t, int64(432), posts[1].Views)

	for _, p := range posts {
		assert.True(t, p.Published)
		assert.True(t, p.Category.Valid())
		assert.NotEmpty(t, p.Excerpt)
	}

	// Callers get independent copies.
	posts[0].Title = "mutated"
	assert.Equal(t, "Next.js 16 업그레이드 가이드", SamplePosts()[0].Title)
}

func TestSampleStats(t *testing.T) {
	stats := SampleStats()
	assert.Equal(t, models.StatsDocID, stats.ID)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(677), stats.TotalViews)
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	member := f.BuildMember()
	assert.NotEmpty(t, member.Name)
	assert.Contains(t, member.Email, "@")
	assert.Equal(t, models.RoleUser, member.Role)
	assert.Empty(t, member.PasswordHash)

	post := f.BuildPost("author-1")
	assert.NotEmpty(t, post.Title)
	assert.True(t, post.Category.Valid())
	assert.Equal(t, "author-1", post.AuthorID)
	assert.NotEmpty(t, post.Tags)
	assert.GreaterOrEqual(t, post.Views, int64(0))
}
