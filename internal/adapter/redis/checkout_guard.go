package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	checkoutLockKeyPrefix = "checkout_lock:"
)

// releaseScript deletes the lock only if it still holds the caller's token, so an
// expired holder cannot drop a lock acquired after it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type checkoutGuard struct {
	client   redis.Cmdable
	newToken func() string
}

// NewCheckoutGuard returns a per-session lock that rejects a second checkout while one is running.
func NewCheckoutGuard(client redis.Cmdable) repository.CheckoutGuard {
	return &checkoutGuard{
		client:   client,
		newToken: uuid.NewString,
	}
}

func (g *checkoutGuard) key(sessionID string) string {
	return checkoutLockKeyPrefix + sessionID
}

func (g *checkoutGuard) Acquire(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	if sessionID == "" {
		return "", false, errors.New("cannot lock checkout for empty session")
	}
	token := g.newToken()
	ok, err := g.client.SetNX(ctx, g.key(sessionID), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire checkout lock for session %s: %w", sessionID, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *checkoutGuard) Release(ctx context.Context, sessionID, token string) error {
	if token == "" {
		return errors.New("cannot release checkout lock without token")
	}
	if err := releaseScript.Run(ctx, g.client, []string{g.key(sessionID)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release checkout lock for session %s: %w", sessionID, err)
	}
	return nil
}
