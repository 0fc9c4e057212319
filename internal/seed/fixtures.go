// Package seed provides demo fixtures and database seeding utilities for
// development and testing.
package seed

import (
	"time"

	"admindesk/internal/models"
)

// SamplePosts returns the canonical demo posts. The slices are freshly
// allocated on every call so callers can mutate their copy.
func SamplePosts() []models.BlogPost {
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	return []models.BlogPost{
		{
			Title:      "Next.js 16 업그레이드 가이드",
			Content:    "<p>Next.js 16으로 업그레이드하면서 새로운 기능들을 알아봅시다.</p><h2>주요 변경사항</h2><ul><li>App Router 개선</li><li>성능 최적화</li><li>Turbopack 지원</li></ul>",
			Excerpt:    "Next.js 16으로 업그레이드하면서 겪었던 경험과 팁을 공유합니다.",
			CoverImage: "https://images.unsplash.com/photo-1633356122544-f134324ef6db?w=600&h=300&fit=crop",
			Category:   models.CategoryTech,
			Tags:       []string{"Next.js", "React", "TypeScript"},
			AuthorID:   "sample-user-1",
			Published:  true,
			Views:      245,
			CreatedAt:  feb1,
			UpdatedAt:  feb1,
		},
		{
			Title:      "포트폴리오 프로젝트 - Admin Dashboard",
			Content:    "<p>NextAuth.js를 사용한 안전한 인증 시스템을 구축했습니다.</p><h2>기술 스택</h2><ul><li>Next.js 16</li><li>TypeScript</li><li>Tailwind CSS</li><li>NextAuth.js</li><li>Firestore</li></ul>",
			Excerpt:    "Next.js와 NextAuth.js를 사용하여 만든 Admin Dashboard 프로젝트입니다.",
			CoverImage: "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=600&h=300&fit=crop",
			Category:   models.CategoryPortfolio,
			Tags:       []string{"Next.js", "TypeScript", "TailwindCSS", "Firestore"},
			AuthorID:   "sample-user-2",
			Published:  true,
			Views:      432,
			CreatedAt:  jan15,
			UpdatedAt:  jan15,
		},
	}
}

// SampleMembers returns the demo member accounts. Password digests are
// filled in by the seeder.
func SampleMembers() []models.User {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	return []models.User{
		{Name: "John Doe", Email: "john@example.com", Role: models.RoleUser, CreatedAt: jan15, UpdatedAt: jan15},
		{Name: "Jane Smith", Email: "jane@example.com", Role: models.RoleUser, CreatedAt: feb1, UpdatedAt: feb1},
		{Name: "Bob Wilson", Email: "bob@example.com", Role: models.RoleUser, CreatedAt: jan20, UpdatedAt: jan20},
	}
}

// SampleStats derives the stats singleton that matches the sample fixtures.
func SampleStats() models.DashboardStats {
	posts := SamplePosts()
	var views int64
	for _, p := range posts {
		views += p.Views
	}
	return models.DashboardStats{
		ID:         models.StatsDocID,
		TotalUsers: int64(len(SampleMembers())),
		TotalPosts: int64(len(posts)),
		TotalViews: views,
		UpdatedAt:  time.Now(),
	}
}
