package nats

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/google/uuid"
)

const (
	SubjectItemQuantityChanged = "cart.item.quantity_changed"
	SubjectItemRemoved         = "cart.item.removed"
	SubjectCheckoutAccepted    = "checkout.accepted"
	SubjectCheckoutRejected    = "checkout.rejected"
)

type ItemQuantityChangedEvent struct {
	EventID     string    `json:"event_id"`
	SessionID   string    `json:"session_id"`
	CartEntryID string    `json:"cart_entry_id"`
	Quantity    int       `json:"quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ItemRemovedEvent struct {
	EventID     string    `json:"event_id"`
	SessionID   string    `json:"session_id"`
	CartEntryID string    `json:"cart_entry_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type CheckoutEvent struct {
	EventID       string    `json:"event_id"`
	AttemptID     string    `json:"attempt_id"`
	SessionID     string    `json:"session_id"`
	Outcome       string    `json:"outcome"`
	GroupName     string    `json:"group_name,omitempty"`
	RequiredCount int       `json:"required_count,omitempty"`
	CurrentCount  int       `json:"current_count"`
	Total         string    `json:"total,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// CartEventPublisher publishes cart and checkout events as JSON.
type CartEventPublisher struct {
	publisher MessagePublisher
}

func NewCartEventPublisher(publisher MessagePublisher) *CartEventPublisher {
	return &CartEventPublisher{publisher: publisher}
}

func (p *CartEventPublisher) ItemQuantityChanged(ctx context.Context, sessionID, cartEntryID string, quantity int) error {
	return p.publisher.Publish(ctx, SubjectItemQuantityChanged, ItemQuantityChangedEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		CartEntryID: cartEntryID,
		Quantity:    quantity,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *CartEventPublisher) ItemRemoved(ctx context.Context, sessionID, cartEntryID string) error {
	return p.publisher.Publish(ctx, SubjectItemRemoved, ItemRemovedEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		CartEntryID: cartEntryID,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *CartEventPublisher) CheckoutEvaluated(ctx context.Context, attempt *entity.CheckoutAttempt) error {
	subject := SubjectCheckoutRejected
	if attempt.Outcome == entity.OutcomeAccepted {
		subject = SubjectCheckoutAccepted
	}
	return p.publisher.Publish(ctx, subject, CheckoutEvent{
		EventID:       uuid.NewString(),
		AttemptID:     attempt.ID,
		SessionID:     attempt.SessionID,
		Outcome:       string(attempt.Outcome),
		GroupName:     attempt.GroupName,
		RequiredCount: attempt.RequiredCount,
		CurrentCount:  attempt.CurrentCount,
		Total:         attempt.Total,
		OccurredAt:    attempt.CreatedAt,
	})
}
