// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admindesk/internal/auth"
	"admindesk/internal/cache"
	"admindesk/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUserInput carries the fields for a new member account. An empty
// Password marks an OAuth-originated account and gets a synthesized
// placeholder digest.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     models.Role
}

// UpdateUserInput carries a partial merge for an existing member. A non-nil
// Password is re-hashed before write.
type UpdateUserInput struct {
	Email    *string      `json:"email,omitempty"`
	Name     *string      `json:"name,omitempty"`
	Password *string      `json:"password,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in CreateUserInput) (string, error)
	Update(ctx context.Context, id string, in UpdateUserInput) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns the first match or nil. Email uniqueness is advisory
// (lookup-before-create at the call sites); duplicates are not surfaced here.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := cache.Aside(ctx, cache.MembersListKey, &users, cache.UserTTL, func() error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cur, err := r.col.Find(ctx, bson.M{}, opts)
		if err != nil {
			return models.NewInternalError(err)
		}
		defer cur.Close(ctx)

		if err := cur.All(ctx, &users); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Create hashes the supplied plaintext password before write; plaintext is
// never stored. OAuth-originated accounts (empty password) get a placeholder
// digest instead.
func (r *userRepository) Create(ctx context.Context, in CreateUserInput) (string, error) {
	password := in.Password
	if password == "" {
		password = auth.PlaceholderPassword()
	}
	digest, err := auth.HashPassword(password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	now := time.Now()
	user := models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: digest,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", models.NewInternalError(fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}

	cache.InvalidateUser(ctx, oid.Hex())
	return oid.Hex(), nil
}

func (r *userRepository) Update(ctx context.Context, id string, in UpdateUserInput) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("User", id)
	}

	set := bson.M{"updatedAt": time.Now()}
	if in.Email != nil {
		set["email"] = *in.Email
	}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Role != nil {
		set["role"] = *in.Role
	}
	if in.Password != nil {
		digest, err := auth.HashPassword(*in.Password)
		if err != nil {
			return models.NewInternalError(err)
		}
		set["passwordHash"] = digest
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("User", id)
	}

	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("User", id)
	}

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
