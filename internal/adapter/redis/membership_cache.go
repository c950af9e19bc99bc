package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	membershipKeyPrefix = "category_products:"
)

type membershipCache struct {
	client redis.Cmdable
}

func NewMembershipCache(client redis.Cmdable) repository.MembershipCache {
	return &membershipCache{
		client: client,
	}
}

func (r *membershipCache) key(categoryID int64) string {
	return membershipKeyPrefix + strconv.FormatInt(categoryID, 10)
}

func (r *membershipCache) Get(ctx context.Context, categoryID int64) ([]int64, error) {
	val, err := r.client.Get(ctx, r.key(categoryID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get products of category %d from redis: %w", categoryID, err)
	}

	var ids []int64
	if err := json.Unmarshal(val, &ids); err != nil {
		_ = r.Delete(ctx, categoryID)
		return nil, fmt.Errorf("failed to unmarshal products of category %d: %w", categoryID, err)
	}
	return ids, nil
}

func (r *membershipCache) Set(ctx context.Context, categoryID int64, productIDs []int64, ttl time.Duration) error {
	if productIDs == nil {
		productIDs = []int64{}
	}
	data, err := json.Marshal(productIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal products of category %d: %w", categoryID, err)
	}

	if err := r.client.Set(ctx, r.key(categoryID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set products of category %d to redis: %w", categoryID, err)
	}
	return nil
}

func (r *membershipCache) Delete(ctx context.Context, categoryID int64) error {
	if err := r.client.Del(ctx, r.key(categoryID)).Err(); err != nil {
		return fmt.Errorf("failed to delete products of category %d from redis: %w", categoryID, err)
	}
	return nil
}
