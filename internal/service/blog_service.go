// Package service provides application business logic (blog, members, dashboard).
package service

import (
	"context"
	"regexp"
	"strings"

	"admindesk/internal/models"
	"admindesk/internal/repository"
)

// excerptLength is the number of leading characters used when an excerpt is
// derived from the content.
const excerptLength = 100

// BlogService provides blog post business logic.
type BlogService struct {
	posts repository.PostRepository
}

// NewBlogService returns a new BlogService.
func NewBlogService(posts repository.PostRepository) *BlogService {
	return &BlogService{posts: posts}
}

// CreatePostInput is the input for creating a blog post.
type CreatePostInput struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Excerpt    string          `json:"excerpt"`
	CoverImage string          `json:"cover_image"`
	Category   models.Category `json:"category"`
	Tags       []string        `json:"tags"`
	AuthorID   string          `json:"author_id"`
	Published  bool            `json:"published"`
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// DeriveExcerpt strips HTML tags and returns the first 100 characters of
// what remains. Counting is by rune so multi-byte text is never split
// mid-character.
func DeriveExcerpt(content string) string {
	plain := htmlTagRegex.ReplaceAllString(content, "")
	runes := []rune(plain)
	if len(runes) <= excerptLength {
		return plain
	}
	return string(runes[:excerptLength])
}

// FilterPosts narrows a post list by category and by a case-insensitive
// search over title and excerpt. An empty category or the value "all" leaves
// the category unconstrained; an empty search matches everything.
func FilterPosts(posts []*models.BlogPost, category, search string) []*models.BlogPost {
	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]*models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != "all" && string(p.Category) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Excerpt), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// ListPosts returns published posts, newest first, optionally narrowed by
// category and search term.
func (s *BlogService) ListPosts(ctx context.Context, category, search string) ([]*models.BlogPost, error) {
	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, category, search), nil
}

// GetPost fetches a single post. When countView is set the view counter is
// bumped first so the returned document reflects this read.
func (s *BlogService) GetPost(ctx context.Context, id string, countView bool) (*models.BlogPost, error) {
	if countView {
		if err := s.posts.IncrementViews(ctx, id); err != nil {
			return nil, err
		}
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// CreatePost validates and stores a new post. A missing excerpt is derived
// from the content.
func (s *BlogService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if !in.Category.Valid() {
		return nil, models.NewValidationError("Category must be one of portfolio, tech, other")
	}

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = DeriveExcerpt(in.Content)
	}

	post := &models.BlogPost{
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    excerpt,
		CoverImage: in.CoverImage,
		Category:   in.Category,
		Tags:       in.Tags,
		AuthorID:   in.AuthorID,
		Published:  in.Published,
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial merge to an existing post. When the content
// changes and no excerpt is supplied, the excerpt is re-derived.
func (s *BlogService) UpdatePost(ctx context.Context, id string, in models.UpdateBlogPostInput) (*models.BlogPost, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if in.Category != nil && !in.Category.Valid() {
		return nil, models.NewValidationError("Category must be one of portfolio, tech, other")
	}

	if in.Content != nil && in.Excerpt == nil {
		excerpt := DeriveExcerpt(*in.Content)
		in.Excerpt = &excerpt
	}

	if err := s.posts.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

// DeletePost removes a post by id.
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}
