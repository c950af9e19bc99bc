package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCheckoutLockTTL    = 30 * time.Second
	defaultMembershipCacheTTL = 5 * time.Minute
	defaultCheckoutRedirect   = "/checkout"
	releaseTimeout            = 2 * time.Second

	sourceCache   = "cache"
	sourceBackend = "backend"
)

type CheckoutResult struct {
	AttemptID   string                 `json:"attempt_id"`
	Allowed     bool                   `json:"allowed"`
	RedirectURL string                 `json:"redirect_url"`
	Totals      entity.FormattedTotals `json:"totals"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error)
	ListAttempts(ctx context.Context, params repository.ListCheckoutAttemptsParams) (*repository.ListCheckoutAttemptsResult, error)
}

type CheckoutServiceConfig struct {
	RedirectURL        string
	LockTTL            time.Duration
	MembershipCacheTTL time.Duration
}

type checkoutService struct {
	querier      repository.CartQuerier
	lookup       repository.CategoryLookup
	cache        repository.MembershipCache
	guard        repository.CheckoutGuard
	attemptRepo  repository.CheckoutAttemptRepository
	events       CartEvents
	metrics      MetricsRecorder
	log          logger.Logger
	redirectURL  string
	lockTTL      time.Duration
	cacheTTL     time.Duration
	newAttemptID func() string
}

// NewCheckoutService wires the checkout gate. cache, guard and attemptRepo may be nil,
// in which case membership is always fetched, duplicate checkouts are not blocked and
// attempts are not stored.
func NewCheckoutService(
	querier repository.CartQuerier,
	lookup repository.CategoryLookup,
	cache repository.MembershipCache,
	guard repository.CheckoutGuard,
	attemptRepo repository.CheckoutAttemptRepository,
	events CartEvents,
	metrics MetricsRecorder,
	log logger.Logger,
	cfg CheckoutServiceConfig,
) CheckoutService {
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = defaultCheckoutLockTTL
	}
	cacheTTL := cfg.MembershipCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultMembershipCacheTTL
	}
	redirectURL := cfg.RedirectURL
	if redirectURL == "" {
		redirectURL = defaultCheckoutRedirect
	}
	if events == nil {
		events = noopEvents{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &checkoutService{
		querier:      querier,
		lookup:       lookup,
		cache:        cache,
		guard:        guard,
		attemptRepo:  attemptRepo,
		events:       events,
		metrics:      metrics,
		log:          log,
		redirectURL:  redirectURL,
		lockTTL:      lockTTL,
		cacheTTL:     cacheTTL,
		newAttemptID: uuid.NewString,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string) (result *CheckoutResult, err error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidInput)
	}

	ctx, span := tracer.Tracer().Start(ctx, "checkout.Checkout")
	span.SetAttributes(attribute.String("session_id", sessionID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s.log.Infof("Checkout requested: SessionID=%s", sessionID)

	if s.guard != nil {
		token, acquired, errLock := s.guard.Acquire(ctx, sessionID, s.lockTTL)
		if errLock != nil {
			s.log.Errorf("Failed to acquire checkout lock for session %s: %v", sessionID, errLock)
			return nil, fmt.Errorf("could not start checkout: %w", errLock)
		}
		if !acquired {
			s.log.Warnf("Checkout already in progress for session %s", sessionID)
			return nil, ErrCheckoutInProgress
		}
		defer s.releaseLock(sessionID, token)
	}

	snapshot, err := s.querier.GetCart(ctx, sessionID)
	if err != nil {
		s.log.Errorf("Error getting cart for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	members, err := s.resolveMemberships(ctx, snapshot.Bundle)
	if err != nil {
		s.log.Errorf("Checkout aborted for session %s: %v", sessionID, err)
		s.record(ctx, entity.NewFailedLookupAttempt(s.newAttemptID(), sessionID))
		return nil, err
	}

	validation := snapshot.Bundle.WithMembers(members).Validate(snapshot.Items)
	totals := snapshot.ComputeTotals()

	attempt, err := entity.NewCheckoutAttempt(s.newAttemptID(), sessionID, snapshot.Items, totals, validation)
	if err != nil {
		return nil, fmt.Errorf("could not build checkout attempt: %w", err)
	}
	s.record(ctx, attempt)

	if !validation.Satisfied {
		s.log.Infof("Checkout rejected for session %s: group %q has %d of %d items",
			sessionID, validation.GroupName, validation.CurrentCount, validation.RequiredCount)
		return nil, &ValidationFailure{AttemptID: attempt.ID, Result: validation}
	}

	s.log.Infof("Checkout accepted for session %s", sessionID)
	return &CheckoutResult{
		AttemptID:   attempt.ID,
		Allowed:     true,
		RedirectURL: s.redirectURL,
		Totals:      totals.Format(),
	}, nil
}

// resolveMemberships fetches the product set of every group concurrently. The sets are
// returned in group order; any failure aborts the whole pass.
func (s *checkoutService) resolveMemberships(ctx context.Context, bundle entity.BundleDefinition) ([]entity.ProductSet, error) {
	members := make([]entity.ProductSet, len(bundle))
	g, gctx := errgroup.WithContext(ctx)

	for i, group := range bundle {
		g.Go(func() error {
			ids, err := s.productsOfCategory(gctx, group.CategoryID)
			if err != nil {
				return fmt.Errorf("%w: group %q (category %d): %v", ErrLookupFailure, group.Name, group.CategoryID, err)
			}
			members[i] = entity.NewProductSet(ids...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *checkoutService) productsOfCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	if s.cache != nil {
		ids, err := s.cache.Get(ctx, categoryID)
		if err == nil {
			s.metrics.MembershipLookup(sourceCache)
			return ids, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("Error getting category %d from cache: %v. Fetching from backend.", categoryID, err)
		}
	}

	ids, err := s.lookup.LookupProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.metrics.MembershipLookup(sourceBackend)

	if s.cache != nil {
		if errSet := s.cache.Set(ctx, categoryID, ids, s.cacheTTL); errSet != nil {
			s.log.Warnf("Failed to cache products of category %d: %v", categoryID, errSet)
		}
	}
	return ids, nil
}

// record stores and announces the attempt. Neither step can fail the checkout.
func (s *checkoutService) record(ctx context.Context, attempt *entity.CheckoutAttempt) {
	s.metrics.Checkout(string(attempt.Outcome))

	if s.attemptRepo != nil {
		if _, err := s.attemptRepo.Create(ctx, attempt); err != nil {
			s.log.Warnf("Failed to store checkout attempt %s: %v", attempt.ID, err)
		}
	}
	if err := s.events.CheckoutEvaluated(ctx, attempt); err != nil {
		s.log.Warnf("Failed to publish checkout attempt %s: %v", attempt.ID, err)
	}
}

func (s *checkoutService) releaseLock(sessionID, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := s.guard.Release(ctx, sessionID, token); err != nil {
		s.log.Warnf("Failed to release checkout lock for session %s: %v", sessionID, err)
	}
}

func (s *checkoutService) ListAttempts(ctx context.Context, params repository.ListCheckoutAttemptsParams) (*repository.ListCheckoutAttemptsResult, error) {
	if params.SessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidInput)
	}
	if s.attemptRepo == nil {
		return &repository.ListCheckoutAttemptsResult{Attempts: []entity.CheckoutAttempt{}, CurrentPage: params.Page, PageSize: params.PageSize}, nil
	}
	res, err := s.attemptRepo.List(ctx, params)
	if err != nil {
		s.log.Errorf("Error listing checkout attempts for session %s: %v", params.SessionID, err)
		return nil, fmt.Errorf("could not list checkout attempts: %w", err)
	}
	return res, nil
}
