package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix = "user:%s"
)

const (
	UserTTL = 5 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}
