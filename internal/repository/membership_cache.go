package repository

import (
	"context"
	"time"
)

type MembershipCache interface {
	Get(ctx context.Context, categoryID int64) ([]int64, error)
	Set(ctx context.Context, categoryID int64, productIDs []int64, ttl time.Duration) error
	Delete(ctx context.Context, categoryID int64) error
}

type CheckoutGuard interface {
	// Acquire returns false when a checkout for the session is already running.
	// The returned token identifies the holder and must be passed to Release.
	Acquire(ctx context.Context, sessionID string, ttl time.Duration) (token string, acquired bool, err error)
	// Release drops the lock only while it is still held under token.
	Release(ctx context.Context, sessionID, token string) error
}
