package models

import "time"

// StatsDocID is the fixed document id of the dashboard stats singleton.
const StatsDocID = "dashboard"

// DashboardStats is the stored aggregate singleton. It is not kept in sync
// with the underlying collections automatically; the dashboard endpoint also
// recomputes the same numbers live, and the two may diverge.
type DashboardStats struct {
	ID         string    `bson:"_id" json:"id"`
	TotalUsers int64     `bson:"totalUsers" json:"total_users"`
	TotalPosts int64     `bson:"totalPosts" json:"total_posts"`
	TotalViews int64     `bson:"totalViews" json:"total_views"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updated_at"`
}

// UpdateStatsInput carries a partial merge for the stats singleton.
type UpdateStatsInput struct {
	TotalUsers *int64 `json:"total_users,omitempty"`
	TotalPosts *int64 `json:"total_posts,omitempty"`
	TotalViews *int64 `json:"total_views,omitempty"`
}
