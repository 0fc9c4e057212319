// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category classifies a blog post.
type Category string

const (
	CategoryPortfolio Category = "portfolio"
	CategoryTech      Category = "tech"
	CategoryOther     Category = "other"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPortfolio, CategoryTech, CategoryOther:
		return true
	}
	return false
}

// BlogPost represents a blog entry. AuthorID is a weak reference to a User
// document; no referential integrity is enforced by the store. Views is
// monotonically non-decreasing and mutated only through the repository's
// atomic increment.
type BlogPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Excerpt    string             `bson:"excerpt" json:"excerpt"`
	CoverImage string             `bson:"coverImage,omitempty" json:"cover_image,omitempty"`
	Category   Category           `bson:"category" json:"category"`
	// Tags keeps insertion order and is not deduplicated.
	Tags      []string  `bson:"tags" json:"tags"`
	AuthorID  string    `bson:"authorId" json:"author_id"`
	Published bool      `bson:"published" json:"published"`
	Views     int64     `bson:"views" json:"views"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// UpdateBlogPostInput carries a partial merge for an existing post. Nil
// fields are left untouched by the update.
type UpdateBlogPostInput struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	CoverImage *string   `json:"cover_image,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Published  *bool     `json:"published,omitempty"`
}
