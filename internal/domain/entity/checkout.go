package entity

import (
	"errors"
	"time"
)

type CheckoutOutcome string

const (
	OutcomeAccepted     CheckoutOutcome = "ACCEPTED"
	OutcomeRejected     CheckoutOutcome = "REJECTED"
	OutcomeLookupFailed CheckoutOutcome = "LOOKUP_FAILED"
)

// CheckoutAttempt is the audit record of one checkout button press.
type CheckoutAttempt struct {
	ID            string          `bson:"_id,omitempty" json:"id"`
	SessionID     string          `bson:"session_id" json:"session_id"`
	Outcome       CheckoutOutcome `bson:"outcome" json:"outcome"`
	GroupName     string          `bson:"group_name,omitempty" json:"group_name,omitempty"`
	RequiredCount int             `bson:"required_count,omitempty" json:"required_count,omitempty"`
	CurrentCount  int             `bson:"current_count" json:"current_count"`
	ItemCount     int             `bson:"item_count" json:"item_count"`
	Subtotal      string          `bson:"subtotal" json:"subtotal"`
	Total         string          `bson:"total" json:"total"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}

func NewCheckoutAttempt(id, sessionID string, items []LineItem, totals Totals, result ValidationResult) (*CheckoutAttempt, error) {
	if sessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	itemCount := 0
	for _, item := range items {
		itemCount += item.Quantity
	}
	formatted := totals.Format()

	attempt := &CheckoutAttempt{
		ID:        id,
		SessionID: sessionID,
		Outcome:   OutcomeAccepted,
		ItemCount: itemCount,
		Subtotal:  formatted.Subtotal,
		Total:     formatted.Total,
		CreatedAt: time.Now().UTC(),
	}
	if !result.Satisfied {
		attempt.Outcome = OutcomeRejected
		attempt.GroupName = result.GroupName
		attempt.RequiredCount = result.RequiredCount
		attempt.CurrentCount = result.CurrentCount
	}
	return attempt, nil
}

// NewFailedLookupAttempt records a checkout aborted because a category could not be resolved.
func NewFailedLookupAttempt(id, sessionID string) *CheckoutAttempt {
	return &CheckoutAttempt{
		ID:        id,
		SessionID: sessionID,
		Outcome:   OutcomeLookupFailed,
		CreatedAt: time.Now().UTC(),
	}
}
