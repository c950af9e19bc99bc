package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

const (
	mutationOK       = "ok"
	mutationRejected = "rejected"
	mutationError    = "error"
)

// CartView is what the front-end renders: the latest backend snapshot plus derived totals.
type CartView struct {
	SessionID     string                  `json:"session_id"`
	Items         []entity.LineItem       `json:"items"`
	Totals        entity.FormattedTotals  `json:"totals"`
	BackendTotals []entity.TotalLine      `json:"backend_totals"`
	Bundle        entity.BundleDefinition `json:"bundle"`
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	IncrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*CartView, error)
	DecrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, cartEntryID string) (*CartView, error)
}

type cartService struct {
	querier repository.CartQuerier
	mutator repository.CartMutator
	events  CartEvents
	metrics MetricsRecorder
	log     logger.Logger
}

func NewCartService(
	querier repository.CartQuerier,
	mutator repository.CartMutator,
	events CartEvents,
	metrics MetricsRecorder,
	log logger.Logger,
) CartService {
	if events == nil {
		events = noopEvents{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &cartService{
		querier: querier,
		mutator: mutator,
		events:  events,
		metrics: metrics,
		log:     log,
	}
}

func toView(snapshot *entity.CartSnapshot) *CartView {
	return &CartView{
		SessionID:     snapshot.SessionID,
		Items:         snapshot.Items,
		Totals:        snapshot.ComputeTotals().Format(),
		BackendTotals: snapshot.Totals,
		Bundle:        snapshot.Bundle,
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidInput)
	}
	s.log.Debugf("Getting cart for session %s", sessionID)
	snapshot, err := s.querier.GetCart(ctx, sessionID)
	if err != nil {
		s.log.Errorf("Error getting cart for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	return toView(snapshot), nil
}

func (s *cartService) IncrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*CartView, error) {
	return s.changeQuantity(ctx, sessionID, cartEntryID, currentQuantity, 1)
}

func (s *cartService) DecrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*CartView, error) {
	return s.changeQuantity(ctx, sessionID, cartEntryID, currentQuantity, -1)
}

func (s *cartService) changeQuantity(ctx context.Context, sessionID, cartEntryID string, currentQuantity, delta int) (*CartView, error) {
	if sessionID == "" || cartEntryID == "" {
		return nil, fmt.Errorf("%w: session ID and cart entry ID are required", ErrInvalidInput)
	}
	change, err := entity.PlanQuantityChange(currentQuantity, delta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if change.Kind == entity.ChangeRemove {
		s.log.Infof("Quantity of entry %s would drop below 1, removing it: SessionID=%s", cartEntryID, sessionID)
		return s.RemoveItem(ctx, sessionID, cartEntryID)
	}

	s.log.Infof("Editing quantity: SessionID=%s, CartEntryID=%s, NewQuantity=%d", sessionID, cartEntryID, change.NewQuantity)
	result, err := s.mutator.EditQuantity(ctx, sessionID, cartEntryID, change.NewQuantity)
	if err := s.checkMutation(string(entity.ChangeEdit), cartEntryID, result, err); err != nil {
		s.log.Warnf("Edit of cart entry %s failed for session %s: %v", cartEntryID, sessionID, err)
		return nil, err
	}

	if errPub := s.events.ItemQuantityChanged(ctx, sessionID, cartEntryID, change.NewQuantity); errPub != nil {
		s.log.Warnf("Failed to publish quantity change for entry %s: %v", cartEntryID, errPub)
	}
	return s.GetCart(ctx, sessionID)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, cartEntryID string) (*CartView, error) {
	if sessionID == "" || cartEntryID == "" {
		return nil, fmt.Errorf("%w: session ID and cart entry ID are required", ErrInvalidInput)
	}
	s.log.Infof("Removing item from cart: SessionID=%s, CartEntryID=%s", sessionID, cartEntryID)

	result, err := s.mutator.Remove(ctx, sessionID, cartEntryID)
	if err := s.checkMutation(string(entity.ChangeRemove), cartEntryID, result, err); err != nil {
		s.log.Warnf("Removal of cart entry %s failed for session %s: %v", cartEntryID, sessionID, err)
		return nil, err
	}

	if errPub := s.events.ItemRemoved(ctx, sessionID, cartEntryID); errPub != nil {
		s.log.Warnf("Failed to publish removal of entry %s: %v", cartEntryID, errPub)
	}
	return s.GetCart(ctx, sessionID)
}

func (s *cartService) checkMutation(kind, cartEntryID string, result *entity.MutationResult, err error) error {
	if err != nil {
		s.metrics.CartMutation(kind, mutationError)
		return &MutationFailure{CartEntryID: cartEntryID, Err: err}
	}
	if result == nil || !result.Success {
		s.metrics.CartMutation(kind, mutationRejected)
		failure := &MutationFailure{CartEntryID: cartEntryID}
		if result != nil {
			failure.Message = result.Message
		}
		return failure
	}
	s.metrics.CartMutation(kind, mutationOK)
	return nil
}
