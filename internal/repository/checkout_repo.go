package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

type ListCheckoutAttemptsParams struct {
	SessionID string
	Outcome   string
	Page      int
	PageSize  int
}

type ListCheckoutAttemptsResult struct {
	Attempts    []entity.CheckoutAttempt
	TotalCount  int64
	CurrentPage int
	PageSize    int
	TotalPages  int
}

type CheckoutAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.CheckoutAttempt) (string, error)
	List(ctx context.Context, params ListCheckoutAttemptsParams) (*ListCheckoutAttemptsResult, error)
}
