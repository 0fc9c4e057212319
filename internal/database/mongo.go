// Package database handles the document store connection.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"admindesk/internal/config"
	"admindesk/internal/middleware"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// slowCommandThreshold is the latency above which a store command is logged
// at warn level.
const slowCommandThreshold = 200 * time.Millisecond

// commandMonitor bridges mongo command events into slog, mirroring the
// request logger's structured fields.
func commandMonitor(logger *slog.Logger) *event.CommandMonitor {
	var mu sync.Mutex
	starts := make(map[int64]time.Time)
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			mu.Lock()
			starts[evt.RequestID] = time.Now()
			mu.Unlock()
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			mu.Lock()
			start, ok := starts[evt.RequestID]
			delete(starts, evt.RequestID)
			mu.Unlock()
			if !ok {
				return
			}
			elapsed := time.Since(start)
			middleware.StoreCommandLatency.WithLabelValues(evt.CommandName).Observe(elapsed.Seconds())
			if elapsed > slowCommandThreshold {
				logger.WarnContext(ctx, "slow store command",
					slog.String("command", evt.CommandName),
					slog.Duration("elapsed", elapsed),
				)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			mu.Lock()
			delete(starts, evt.RequestID)
			mu.Unlock()
			logger.ErrorContext(ctx, "store command failed",
				slog.String("command", evt.CommandName),
				slog.String("error", evt.Failure),
			)
		},
	}
}

// Connect establishes the MongoDB client and verifies connectivity.
func Connect(cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMonitor(commandMonitor(middleware.Logger))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	middleware.Logger.Info("MongoDB connected", slog.String("database", cfg.MongoDB))
	return client, client.Database(cfg.MongoDB), nil
}

// Disconnect closes the client, bounded by the given context.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
