package service

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCartQuerier struct {
	mock.Mock
}

func (m *MockCartQuerier) GetCart(ctx context.Context, sessionID string) (*entity.CartSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CartSnapshot), args.Error(1)
}

type MockCartMutator struct {
	mock.Mock
}

func (m *MockCartMutator) EditQuantity(ctx context.Context, sessionID, cartEntryID string, quantity int) (*entity.MutationResult, error) {
	args := m.Called(ctx, sessionID, cartEntryID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MutationResult), args.Error(1)
}

func (m *MockCartMutator) Remove(ctx context.Context, sessionID, cartEntryID string) (*entity.MutationResult, error) {
	args := m.Called(ctx, sessionID, cartEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MutationResult), args.Error(1)
}

type MockCategoryLookup struct {
	mock.Mock
}

func (m *MockCategoryLookup) LookupProductsByCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockMembershipCache struct {
	mock.Mock
}

func (m *MockMembershipCache) Get(ctx context.Context, categoryID int64) ([]int64, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipCache) Set(ctx context.Context, categoryID int64, productIDs []int64, ttl time.Duration) error {
	args := m.Called(ctx, categoryID, productIDs, ttl)
	return args.Error(0)
}

func (m *MockMembershipCache) Delete(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

type MockCheckoutGuard struct {
	mock.Mock
}

func (m *MockCheckoutGuard) Acquire(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, sessionID, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCheckoutGuard) Release(ctx context.Context, sessionID, token string) error {
	args := m.Called(ctx, sessionID, token)
	return args.Error(0)
}

type MockCheckoutAttemptRepository struct {
	mock.Mock
}

func (m *MockCheckoutAttemptRepository) Create(ctx context.Context, attempt *entity.CheckoutAttempt) (string, error) {
	args := m.Called(ctx, attempt)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutAttemptRepository) List(ctx context.Context, params repository.ListCheckoutAttemptsParams) (*repository.ListCheckoutAttemptsResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListCheckoutAttemptsResult), args.Error(1)
}

type MockCartEvents struct {
	mock.Mock
}

func (m *MockCartEvents) ItemQuantityChanged(ctx context.Context, sessionID, cartEntryID string, quantity int) error {
	args := m.Called(ctx, sessionID, cartEntryID, quantity)
	return args.Error(0)
}

func (m *MockCartEvents) ItemRemoved(ctx context.Context, sessionID, cartEntryID string) error {
	args := m.Called(ctx, sessionID, cartEntryID)
	return args.Error(0)
}

func (m *MockCartEvents) CheckoutEvaluated(ctx context.Context, attempt *entity.CheckoutAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

type NoOpLogger struct{}

func (l *NoOpLogger) Debug(args ...interface{})                       {}
func (l *NoOpLogger) Debugf(template string, args ...interface{})     {}
func (l *NoOpLogger) Info(args ...interface{})                        {}
func (l *NoOpLogger) Infof(template string, args ...interface{})      {}
func (l *NoOpLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Warn(args ...interface{})                        {}
func (l *NoOpLogger) Warnf(template string, args ...interface{})      {}
func (l *NoOpLogger) Error(args ...interface{})                       {}
func (l *NoOpLogger) Errorf(template string, args ...interface{})     {}
func (l *NoOpLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) Fatal(args ...interface{})                       {}
func (l *NoOpLogger) Fatalf(template string, args ...interface{})     {}
func (l *NoOpLogger) With(args ...interface{}) logger.Logger          { return l }
func (l *NoOpLogger) Sync() error                                     { return nil }

func NewNoOpLogger() logger.Logger {
	return &NoOpLogger{}
}
