package service

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

type CartEvents interface {
	ItemQuantityChanged(ctx context.Context, sessionID, cartEntryID string, quantity int) error
	ItemRemoved(ctx context.Context, sessionID, cartEntryID string) error
	CheckoutEvaluated(ctx context.Context, attempt *entity.CheckoutAttempt) error
}

type MetricsRecorder interface {
	CartMutation(kind, result string)
	Checkout(outcome string)
	MembershipLookup(source string)
}

type noopEvents struct{}

func (noopEvents) ItemQuantityChanged(context.Context, string, string, int) error {
	return nil
}

func (noopEvents) ItemRemoved(context.Context, string, string) error {
	return nil
}

func (noopEvents) CheckoutEvaluated(context.Context, *entity.CheckoutAttempt) error {
	return nil
}

type noopMetrics struct{}

func (noopMetrics) CartMutation(string, string) {}
func (noopMetrics) Checkout(string)             {}
func (noopMetrics) MembershipLookup(string)     {}
