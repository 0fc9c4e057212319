package server

import (
	"context"

	"admindesk/internal/config"
	"admindesk/internal/models"
	"admindesk/internal/repository"
	"admindesk/internal/seed"
	"admindesk/internal/service"
	"admindesk/internal/state"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test_secret"

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, in repository.CreateUserInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, in repository.UpdateUserInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.BlogPost) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id string, in models.UpdateBlogPostInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsRepository is a mock of the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockStatsRepository) Upsert(ctx context.Context, in models.UpdateStatsInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// newTestServer wires a Server around mocked repositories.
func newTestServer(userRepo repository.UserRepository, postRepo repository.PostRepository, statsRepo repository.StatsRepository) *Server {
	s := &Server{
		config:     &config.Config{JWTSecret: testSecret, Env: "test", Port: "0"},
		userRepo:   userRepo,
		postRepo:   postRepo,
		statsRepo:  statsRepo,
		workspaces: state.NewManager(seed.SamplePosts),
	}
	s.blogService = service.NewBlogService(postRepo)
	s.memberService = service.NewMemberService(userRepo)
	s.dashboardService = service.NewDashboardService(postRepo, userRepo, statsRepo)
	return s
}

// newTestApp mounts the full route table without the outer middleware stack.
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}
