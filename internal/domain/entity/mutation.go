package entity

import "errors"

const minLineQuantity = 1

type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type QuantityChangeKind string

const (
	ChangeEdit   QuantityChangeKind = "EDIT"
	ChangeRemove QuantityChangeKind = "REMOVE"
)

// QuantityChange is what gets sent to the commerce backend for a +/- action.
type QuantityChange struct {
	Kind        QuantityChangeKind
	NewQuantity int
}

// PlanQuantityChange turns a displayed quantity and a step into the backend call.
// Dropping below one becomes a removal, so a zero quantity is never sent.
func PlanQuantityChange(currentQuantity, delta int) (QuantityChange, error) {
	if currentQuantity < minLineQuantity {
		return QuantityChange{}, errors.New("current quantity must be positive")
	}
	if delta == 0 {
		return QuantityChange{}, errors.New("quantity delta cannot be zero")
	}

	next := currentQuantity + delta
	if next < minLineQuantity {
		return QuantityChange{Kind: ChangeRemove}, nil
	}
	return QuantityChange{Kind: ChangeEdit, NewQuantity: next}, nil
}
