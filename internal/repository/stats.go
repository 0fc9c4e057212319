package repository

import (
	"context"
	"errors"
	"time"

	"admindesk/internal/cache"
	"admindesk/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsRepository manages the dashboard stats singleton (fixed document id).
type StatsRepository interface {
	Get(ctx context.Context) (*models.DashboardStats, error)
	Upsert(ctx context.Context, in models.UpdateStatsInput) error
}

type statsRepository struct {
	col *mongo.Collection
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *mongo.Database) StatsRepository {
	return &statsRepository{col: db.Collection("stats")}
}

func (r *statsRepository) Get(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	found := true
	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		if err := r.col.FindOne(ctx, bson.M{"_id": models.StatsDocID}).Decode(&stats); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				found = false
				return nil
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found || stats.ID == "" {
		return nil, nil
	}
	return &stats, nil
}

func (r *statsRepository) Upsert(ctx context.Context, in models.UpdateStatsInput) error {
	set := bson.M{"updatedAt": time.Now()}
	if in.TotalUsers != nil {
		set["totalUsers"] = *in.TotalUsers
	}
	if in.TotalPosts != nil {
		set["totalPosts"] = *in.TotalPosts
	}
	if in.TotalViews != nil {
		set["totalViews"] = *in.TotalViews
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": models.StatsDocID}, bson.M{"$set": set}, opts); err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateStats(ctx)
	return nil
}
