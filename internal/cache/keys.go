package cache

import (
	"context"
	"fmt"
	"time"
)

// Lookups by email are never cached: the password column is excluded from
// JSON, so a cached user cannot serve credential checks.
const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
	PostFeedKey   = "posts:all"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
	FeedTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostFeedKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, PostFeedKey)
}
