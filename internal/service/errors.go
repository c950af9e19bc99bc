package service

import (
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

var (
	ErrLookupFailure      = errors.New("category membership lookup failed")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this session")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidInput       = errors.New("invalid input")
)

// MutationFailure is returned when the commerce backend rejects or fails an edit/remove.
// The previously displayed cart stays as it was.
type MutationFailure struct {
	CartEntryID string
	Message     string
	Err         error
}

func (e *MutationFailure) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("cart entry %s: mutation failed: %v", e.CartEntryID, e.Err)
	case e.Message != "":
		return fmt.Sprintf("cart entry %s: mutation rejected: %s", e.CartEntryID, e.Message)
	default:
		return fmt.Sprintf("cart entry %s: mutation rejected", e.CartEntryID)
	}
}

func (e *MutationFailure) Unwrap() error {
	return e.Err
}

// ValidationFailure blocks checkout because a menu group has too few items.
type ValidationFailure struct {
	AttemptID string
	Result    entity.ValidationResult
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("menu group %q needs %d items, cart has %d", e.Result.GroupName, e.Result.RequiredCount, e.Result.CurrentCount)
}
