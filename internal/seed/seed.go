package seed

import (
	"context"
	"fmt"

	"admindesk/internal/auth"
	"admindesk/internal/middleware"
	"admindesk/internal/models"
	"admindesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Options configures the seeder.
type Options struct {
	// NumMembers and NumPosts add randomized entities on top of the fixed
	// fixtures.
	NumMembers int
	NumPosts   int
	// Clean drops the collections before seeding.
	Clean bool
}

// samplePassword is the shared password for fixture accounts, development
// only.
const samplePassword = "password123"

// Seeder writes demo data directly to the database, preserving fixture
// timestamps that the repositories would otherwise overwrite.
type Seeder struct {
	db      *mongo.Database
	factory *Factory
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *mongo.Database) *Seeder {
	return &Seeder{db: db, factory: NewFactory()}
}

// HasData reports whether any of the seeded collections already hold
// documents.
func (s *Seeder) HasData(ctx context.Context) (bool, error) {
	for _, name := range []string{"posts", "users", "stats"} {
		n, err := s.db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			return false, fmt.Errorf("count %s: %w", name, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Run seeds the fixture posts, members, and the stats singleton, plus any
// requested randomized extras. Existing data is left alone unless Clean is
// set.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clean {
		for _, name := range []string{"posts", "users", "stats"} {
			if err := s.db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("drop %s: %w", name, err)
			}
		}
	} else {
		hasData, err := s.HasData(ctx)
		if err != nil {
			return err
		}
		if hasData {
			middleware.Logger.Info("seed skipped, data already present")
			return nil
		}
	}

	digest, err := auth.HashPassword(samplePassword)
	if err != nil {
		return err
	}

	members := SampleMembers()
	for i := 0; i < opts.NumMembers; i++ {
		members = append(members, s.factory.BuildMember())
	}
	userDocs := make([]interface{}, 0, len(members))
	for i := range members {
		members[i].PasswordHash = digest
		userDocs = append(userDocs, members[i])
	}
	if _, err := s.db.Collection("users").InsertMany(ctx, userDocs); err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	posts := SamplePosts()
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, s.factory.BuildPost("sample-user-1"))
	}
	postDocs := make([]interface{}, 0, len(posts))
	var totalViews int64
	for _, p := range posts {
		postDocs = append(postDocs, p)
		if p.Published {
			totalViews += p.Views
		}
	}
	if _, err := s.db.Collection("posts").InsertMany(ctx, postDocs); err != nil {
		return fmt.Errorf("insert posts: %w", err)
	}

	stats := SampleStats()
	stats.TotalUsers = int64(len(members))
	stats.TotalPosts = int64(len(posts))
	stats.TotalViews = totalViews
	if _, err := s.db.Collection("stats").InsertOne(ctx, stats); err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}

	middleware.Logger.Info("seed complete",
		"members", len(members),
		"posts", len(posts),
		"total_views", totalViews,
	)
	return nil
}

// EnsureAdmin creates the bootstrap admin account if no account with the
// given email exists. A pre-existing account is left untouched, including
// its role.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if name == "" {
		name = "관리자"
	}
	id, err := users.Create(ctx, repository.CreateUserInput{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("bootstrap admin created", "user_id", id, "email", email)
	return nil
}
