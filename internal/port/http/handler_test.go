package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/i18n"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, sessionID string) (*service.CartView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) IncrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*service.CartView, error) {
	args := m.Called(ctx, sessionID, cartEntryID, currentQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) DecrementItem(ctx context.Context, sessionID, cartEntryID string, currentQuantity int) (*service.CartView, error) {
	args := m.Called(ctx, sessionID, cartEntryID, currentQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, cartEntryID string) (*service.CartView, error) {
	args := m.Called(ctx, sessionID, cartEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, sessionID string) (*service.CheckoutResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutService) ListAttempts(ctx context.Context, params repository.ListCheckoutAttemptsParams) (*repository.ListCheckoutAttemptsResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListCheckoutAttemptsResult), args.Error(1)
}

type recordingObserver struct {
	routes []string
	codes  []int
}

func (o *recordingObserver) ObserveHTTPRequest(route, _ string, code int, _ float64) {
	o.routes = append(o.routes, route)
	o.codes = append(o.codes, code)
}

const sessionID = "sess-42"

func newTestRouter(observer RequestObserver) (http.Handler, *MockCartService, *MockCheckoutService) {
	cart := new(MockCartService)
	checkout := new(MockCheckoutService)
	log := logger.FromZap(zap.NewNop())
	h := NewCartHandler(cart, checkout, i18n.NewTranslator("de"), log)
	return NewRouter(h, log, observer), cart, checkout
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(SessionHeader, sessionID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGetCart(t *testing.T) {
	router, cart, _ := newTestRouter(nil)
	view := &service.CartView{
		SessionID: sessionID,
		Items:     []entity.LineItem{{ProductID: 1, CartEntryID: "c1", Name: "Caesar", Price: "8,00 €", Quantity: 2}},
		Totals:    entity.FormattedTotals{Subtotal: "16.00", Total: "16.00"},
	}
	cart.On("GetCart", mock.Anything, sessionID).Return(view, nil).Once()

	rec := doRequest(t, router, http.MethodGet, "/api/cart", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got service.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "16.00", got.Totals.Total)
	assert.Len(t, got.Items, 1)
	cart.AssertExpectations(t)
}

func TestRequireSession_MissingHeader(t *testing.T) {
	router, cart, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cart.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestHandleDecrementItem_PassesDisplayedQuantity(t *testing.T) {
	router, cart, _ := newTestRouter(nil)
	cart.On("DecrementItem", mock.Anything, sessionID, "c1", 1).Return(&service.CartView{SessionID: sessionID}, nil).Once()

	rec := doRequest(t, router, http.MethodPost, "/api/cart/items/c1/decrement", `{"quantity":1}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	cart.AssertExpectations(t)
}

func TestHandleIncrementItem_InvalidBody(t *testing.T) {
	router, cart, _ := newTestRouter(nil)

	rec := doRequest(t, router, http.MethodPost, "/api/cart/items/c1/increment", `{bad`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cart.AssertNotCalled(t, "IncrementItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleIncrementItem_MutationRejected(t *testing.T) {
	router, cart, _ := newTestRouter(nil)
	failure := &service.MutationFailure{CartEntryID: "c1", Message: "Nicht genügend Bestand"}
	cart.On("IncrementItem", mock.Anything, sessionID, "c1", 3).Return(nil, failure).Once()

	rec := doRequest(t, router, http.MethodPost, "/api/cart/items/c1/increment", `{"quantity":3}`, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Nicht genügend Bestand", body.Error)
	assert.Equal(t, "c1", body.CartEntryID)
}

func TestHandleRemoveItem_TransportFailureUsesLocalizedMessage(t *testing.T) {
	router, cart, _ := newTestRouter(nil)
	failure := &service.MutationFailure{CartEntryID: "c1", Err: errors.New("timeout")}
	cart.On("RemoveItem", mock.Anything, sessionID, "c1").Return(nil, failure).Once()

	rec := doRequest(t, router, http.MethodDelete, "/api/cart/items/c1", "", map[string]string{"Accept-Language": "en-US"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, i18n.KeyMutationFailed, decodeError(t, rec).Error)
}

func TestHandleCheckout_Allowed(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	checkout.On("Checkout", mock.Anything, sessionID).Return(&service.CheckoutResult{
		AttemptID:   "a1",
		Allowed:     true,
		RedirectURL: "/kasse",
	}, nil).Once()

	rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got service.CheckoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Allowed)
	assert.Equal(t, "/kasse", got.RedirectURL)
}

func TestHandleCheckout_ValidationFailureIsLocalized(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	failure := &service.ValidationFailure{AttemptID: "a1", Result: entity.Unsatisfied("Salat", 2, 1)}
	checkout.On("Checkout", mock.Anything, sessionID).Return(nil, failure)

	rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Für „Salat“ werden mindestens 2 Artikel benötigt, ausgewählt sind 1.", body.Error)
	assert.Equal(t, "Salat", body.GroupName)
	require.NotNil(t, body.RequiredCount)
	require.NotNil(t, body.CurrentCount)
	assert.Equal(t, 2, *body.RequiredCount)
	assert.Equal(t, 1, *body.CurrentCount)

	rec = doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", map[string]string{"Accept-Language": "en"})
	assert.Equal(t, "Salat requires at least 2 items, 1 selected.", decodeError(t, rec).Error)
}

func TestHandleCheckout_ZeroSelectedStillReportsCount(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	failure := &service.ValidationFailure{AttemptID: "a2", Result: entity.Unsatisfied("Dessert", 1, 0)}
	checkout.On("Checkout", mock.Anything, sessionID).Return(nil, failure).Once()

	rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, float64(0), raw["current_count"])
	assert.Equal(t, float64(1), raw["required_count"])
	assert.Equal(t, "Dessert", raw["group_name"])
}

func TestHandleCheckout_EmptyCartIsLocalized(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	checkout.On("Checkout", mock.Anything, sessionID).Return(nil, service.ErrEmptyCart)

	rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Ihr Warenkorb ist leer.", decodeError(t, rec).Error)

	rec = doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", map[string]string{"Accept-Language": "en"})
	assert.Equal(t, i18n.KeyEmptyCart, decodeError(t, rec).Error)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "current_count")
}

func TestHandleCheckout_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"lookup failure", errors.Join(service.ErrLookupFailure, errors.New("timeout")), http.StatusServiceUnavailable},
		{"in progress", service.ErrCheckoutInProgress, http.StatusConflict},
		{"empty cart", service.ErrEmptyCart, http.StatusUnprocessableEntity},
		{"backend down", repository.ErrBackendUnavailable, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, checkout := newTestRouter(nil)
			checkout.On("Checkout", mock.Anything, sessionID).Return(nil, tt.err).Once()

			rec := doRequest(t, router, http.MethodPost, "/api/cart/checkout", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec).Error)
		})
	}
}

func TestHandleListCheckouts_Pagination(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	params := repository.ListCheckoutAttemptsParams{SessionID: sessionID, Outcome: "REJECTED", Page: 2, PageSize: 5}
	checkout.On("ListAttempts", mock.Anything, params).Return(&repository.ListCheckoutAttemptsResult{CurrentPage: 2, PageSize: 5}, nil).Once()

	rec := doRequest(t, router, http.MethodGet, "/api/cart/checkouts?page=2&page_size=5&outcome=REJECTED", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	checkout.AssertExpectations(t)
}

func TestHandleListCheckouts_DefaultsOnBadQuery(t *testing.T) {
	router, _, checkout := newTestRouter(nil)
	params := repository.ListCheckoutAttemptsParams{SessionID: sessionID, Page: defaultPage, PageSize: defaultPageSize}
	checkout.On("ListAttempts", mock.Anything, params).Return(&repository.ListCheckoutAttemptsResult{}, nil).Once()

	rec := doRequest(t, router, http.MethodGet, "/api/cart/checkouts?page=zero&page_size=-1", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	checkout.AssertExpectations(t)
}

func TestHealthAndMetricsObserver(t *testing.T) {
	observer := &recordingObserver{}
	router, _, _ := newTestRouter(observer)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, observer.routes, 1)
	assert.Equal(t, "/healthz", observer.routes[0])
	assert.Equal(t, http.StatusOK, observer.codes[0])
}
