// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admindesk/internal/cache"
	"admindesk/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for blog post data operations.
type PostRepository interface {
	ListPublished(ctx context.Context) ([]*models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) (string, error)
	Update(ctx context.Context, id string, in models.UpdateBlogPostInput) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// postRepository implements PostRepository against the posts collection.
type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{col: db.Collection("posts")}
}

func (r *postRepository) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := cache.Aside(ctx, cache.PostListKey, &posts, cache.ListTTL, func() error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cur, err := r.col.Find(ctx, bson.M{"published": true}, opts)
		if err != nil {
			return models.NewInternalError(err)
		}
		defer cur.Close(ctx)

		if err := cur.All(ctx, &posts); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An id that cannot exist in the collection is an absent result.
		return nil, nil
	}

	var post models.BlogPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.BlogPost) (string, error) {
	// Timestamps are stamped server-side at write time.
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", models.NewInternalError(fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	post.ID = oid

	cache.InvalidatePost(ctx, oid.Hex())
	return oid.Hex(), nil
}

func (r *postRepository) Update(ctx context.Context, id string, in models.UpdateBlogPostInput) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("Post", id)
	}

	set := bson.M{"updatedAt": time.Now()}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Excerpt != nil {
		set["excerpt"] = *in.Excerpt
	}
	if in.CoverImage != nil {
		set["coverImage"] = *in.CoverImage
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if in.Published != nil {
		set["published"] = *in.Published
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Post", id)
	}

	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("Post", id)
	}

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, id)
	return nil
}

// IncrementViews bumps the view counter with an atomic $inc so concurrent
// reads never lose an increment.
func (r *postRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("Post", id)
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}
