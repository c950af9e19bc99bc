package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

type CartQuerier interface {
	GetCart(ctx context.Context, sessionID string) (*entity.CartSnapshot, error)
}

type CartMutator interface {
	EditQuantity(ctx context.Context, sessionID, cartEntryID string, quantity int) (*entity.MutationResult, error)
	Remove(ctx context.Context, sessionID, cartEntryID string) (*entity.MutationResult, error)
}

type CategoryLookup interface {
	LookupProductsByCategory(ctx context.Context, categoryID int64) ([]int64, error)
}
