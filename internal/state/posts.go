package state

import (
	"sync"
	"time"

	"admindesk/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostList is a session-scoped working set of posts. It mirrors the blog
// post shape but lives entirely in memory.
type PostList struct {
	mu    sync.RWMutex
	posts []models.BlogPost
}

// Set replaces the whole list.
func (l *PostList) Set(posts []models.BlogPost) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posts = make([]models.BlogPost, len(posts))
	copy(l.posts, posts)
}

// Add appends a post, assigning an id and timestamps when missing, and
// returns the stored copy.
func (l *PostList) Add(post models.BlogPost) models.BlogPost {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	l.mu.Lock()
	defer l.mu.Unlock()
	l.posts = append(l.posts, post)
	return post
}

// Update applies a partial merge to the post with the given hex id. It
// reports whether a post matched.
func (l *PostList) Update(id string, in models.UpdateBlogPostInput) (models.BlogPost, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.posts {
		if l.posts[i].ID.Hex() != id {
			continue
		}
		p := &l.posts[i]
		if in.Title != nil {
			p.Title = *in.Title
		}
		if in.Content != nil {
			p.Content = *in.Content
		}
		if in.Excerpt != nil {
			p.Excerpt = *in.Excerpt
		}
		if in.CoverImage != nil {
			p.CoverImage = *in.CoverImage
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Tags != nil {
			p.Tags = in.Tags
		}
		if in.Published != nil {
			p.Published = *in.Published
		}
		p.UpdatedAt = time.Now()
		return *p, true
	}
	return models.BlogPost{}, false
}

// Delete removes the post with the given hex id and reports whether a post
// matched.
func (l *PostList) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.posts {
		if l.posts[i].ID.Hex() == id {
			l.posts = append(l.posts[:i], l.posts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the current posts.
func (l *PostList) List() []models.BlogPost {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.BlogPost, len(l.posts))
	copy(out, l.posts)
	return out
}
