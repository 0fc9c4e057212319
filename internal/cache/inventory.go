package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix  = "post:%s"
	PostListKey    = "posts:published"
	StatsKey       = "stats:dashboard"
	UserKeyPrefix  = "user:%s"
	MembersListKey = "users:all"
)

const (
	PostTTL  = 30 * time.Minute
	ListTTL  = 5 * time.Minute
	StatsTTL = 2 * time.Minute
	UserTTL  = 5 * time.Minute
)

func PostKey(id string) string {
	return fmt.Sprintf(PostKeyPrefix, id)
}

func UserKey(id string) string {
	return fmt.Sprintf(UserKeyPrefix, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, id string) {
	Invalidate(ctx, PostKey(id))
	Invalidate(ctx, PostListKey)
}

func InvalidateUser(ctx context.Context, id string) {
	Invalidate(ctx, UserKey(id))
	Invalidate(ctx, MembersListKey)
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}
