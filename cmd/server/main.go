// Command main is the entry point for the admindesk API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admindesk/internal/config"
	"admindesk/internal/server"

	"github.com/gofiber/fiber/v2"
)

func main() {
	seedDemo := flag.Bool("seed", false, "load demo fixtures before serving")
	seedClean := flag.Bool("seed-clean", false, "drop collections before seeding (implies -seed)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if *seedDemo || *seedClean {
		if err := srv.SeedDemoData(bootCtx, *seedClean); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	} else if err := srv.EnsureAdmin(bootCtx); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}
	bootCancel()

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "Admindesk API",
		BodyLimit: 10 * 1024 * 1024, // 10MB limit
	})

	// Setup middleware and routes
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
