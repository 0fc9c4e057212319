// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"admindesk/internal/auth"
	"admindesk/internal/cache"
	"admindesk/internal/config"
	"admindesk/internal/database"
	"admindesk/internal/middleware"
	"admindesk/internal/models"
	"admindesk/internal/repository"
	"admindesk/internal/seed"
	"admindesk/internal/service"
	"admindesk/internal/state"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	client           *mongo.Client
	db               *mongo.Database
	redis            *redis.Client
	promMiddleware   *fiberprometheus.FiberPrometheus
	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	statsRepo        repository.StatsRepository
	blogService      *service.BlogService
	memberService    *service.MemberService
	dashboardService *service.DashboardService
	providers        map[string]*auth.OAuthProvider
	workspaces       *state.Manager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	client, db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	s := newServerWith(cfg, client, db, cache.GetClient())
	return s, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish Mongo/Redis themselves.
func NewServerWithDeps(cfg *config.Config, client *mongo.Client, db *mongo.Database, redisClient *redis.Client) *Server {
	return newServerWith(cfg, client, db, redisClient)
}

func newServerWith(cfg *config.Config, client *mongo.Client, db *mongo.Database, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	prom := middleware.InitMetrics("admindesk-api")

	s := &Server{
		config:         cfg,
		client:         client,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		statsRepo:      statsRepo,
		providers:      auth.OAuthProviders(cfg),
		workspaces:     state.NewManager(seed.SamplePosts),
	}
	s.blogService = service.NewBlogService(postRepo)
	s.memberService = service.NewMemberService(userRepo)
	s.dashboardService = service.NewDashboardService(postRepo, userRepo, statsRepo)
	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// Page navigation guard for non-API paths
	app.Use(middleware.RouteGuard(s.config.JWTSecret))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	authGroup.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Post("/logout", s.Logout)
	authGroup.Get("/session", s.GetSession)
	authGroup.Get("/oauth/:provider", s.OAuthRedirect)
	authGroup.Get("/oauth/:provider/callback", s.OAuthCallback)

	// Public post routes
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:id", s.GetPost)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Post management
	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Dashboard aggregates
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", s.GetDashboardStats)
	dashboard.Put("/stats", s.AdminRequired(), s.UpdateDashboardStats)

	// Member management (admin only)
	users := protected.Group("/users", s.AdminRequired())
	users.Get("/", s.GetMembers)
	users.Post("/", s.CreateMember)
	users.Get("/:id", s.GetMember)
	users.Put("/:id", s.UpdateMember)
	users.Delete("/:id", s.DeleteMember)

	// Session workspace (per-session scratch state)
	workspace := protected.Group("/workspace")
	workspace.Get("/posts", s.WorkspaceListPosts)
	workspace.Post("/posts", s.WorkspaceAddPost)
	workspace.Put("/posts/:id", s.WorkspaceUpdatePost)
	workspace.Delete("/posts/:id", s.WorkspaceDeletePost)
	workspace.Get("/counter", s.WorkspaceCounter)
	workspace.Post("/counter/increment", s.WorkspaceCounterIncrement)
	workspace.Post("/counter/decrement", s.WorkspaceCounterDecrement)
	workspace.Post("/counter/reset", s.WorkspaceCounterReset)
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("redis close failed", "error", err.Error())
		}
	}
	if s.client != nil {
		return database.Disconnect(ctx, s.client)
	}
	return nil
}

// SeedDemoData loads the demo fixtures and makes sure the bootstrap admin
// account exists. Existing data is preserved unless clean is set.
func (s *Server) SeedDemoData(ctx context.Context, clean bool) error {
	seeder := seed.NewSeeder(s.db)
	if err := seeder.Run(ctx, seed.Options{NumMembers: 5, NumPosts: 8, Clean: clean}); err != nil {
		return err
	}
	return s.EnsureAdmin(ctx)
}

// EnsureAdmin creates the configured bootstrap admin if it does not exist.
func (s *Server) EnsureAdmin(ctx context.Context) error {
	return seed.EnsureAdmin(ctx, s.userRepo, s.config.AdminEmail, s.config.AdminPassword, "관리자")
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.client == nil {
		dbStatus = "unavailable"
	} else if err := s.client.Ping(ctx, nil); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the cache degrades to pass-through without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The decoded claims are
// stored in locals; tokens issued right after an OAuth login may lack a role
// and get it backfilled by email.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(middleware.SessionCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := auth.ParseToken(tokenString, s.config.JWTSecret)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims = auth.BackfillClaims(c.UserContext(), claims, s.userRepo.GetByEmail)

		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so the claims are available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(auth.TokenClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		if claims.Role != models.RoleAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}
