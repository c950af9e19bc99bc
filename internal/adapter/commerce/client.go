package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxErrorBodyBytes     = 512
)

type ClientConfig struct {
	BaseURL        string
	APIToken       string
	RequestTimeout time.Duration
}

// ErrorObserver is told about every failed backend call, keyed by operation name.
type ErrorObserver func(operation string)

// Client talks to the commerce backend's JSON API. It implements the cart query,
// cart mutation and category lookup ports.
type Client struct {
	baseURL    *url.URL
	apiToken   string
	httpClient *http.Client
	log        logger.Logger
	onError    ErrorObserver
}

var (
	_ repository.CartQuerier    = (*Client)(nil)
	_ repository.CartMutator    = (*Client)(nil)
	_ repository.CategoryLookup = (*Client)(nil)
)

func NewClient(cfg ClientConfig, log logger.Logger, onError ErrorObserver) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("commerce backend base URL is not configured")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid commerce backend base URL %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if onError == nil {
		onError = func(string) {}
	}
	return &Client{
		baseURL:    base,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		onError:    onError,
	}, nil
}

func (c *Client) GetCart(ctx context.Context, sessionID string) (*entity.CartSnapshot, error) {
	query := url.Values{"session_id": {sessionID}}
	var resp cartResponse
	if err := c.do(ctx, "get_cart", http.MethodGet, "/cart", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}
	return resp.toEntity(sessionID), nil
}

func (c *Client) EditQuantity(ctx context.Context, sessionID, cartEntryID string, quantity int) (*entity.MutationResult, error) {
	body := editRequest{SessionID: sessionID, Key: cartEntryID, Quantity: quantity}
	var resp mutationResponse
	if err := c.do(ctx, "edit_quantity", http.MethodPost, "/cart/edit", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to edit quantity of cart entry %s: %w", cartEntryID, err)
	}
	return &entity.MutationResult{Success: resp.Success, Message: resp.Message}, nil
}

func (c *Client) Remove(ctx context.Context, sessionID, cartEntryID string) (*entity.MutationResult, error) {
	body := removeRequest{SessionID: sessionID, Key: cartEntryID}
	var resp mutationResponse
	if err := c.do(ctx, "remove", http.MethodPost, "/cart/remove", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to remove cart entry %s: %w", cartEntryID, err)
	}
	return &entity.MutationResult{Success: resp.Success, Message: resp.Message}, nil
}

func (c *Client) LookupProductsByCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	query := url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	var resp categoryProductsResponse
	if err := c.do(ctx, "lookup_category", http.MethodGet, "/products", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to look up products of category %d: %w", categoryID, err)
	}
	ids := make([]int64, 0, len(resp.Products))
	for _, p := range resp.Products {
		ids = append(ids, int64(p.ProductID))
	}
	return ids, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out interface{}) (err error) {
	ctx, span := tracer.Tracer().Start(ctx, "commerce."+operation)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.onError(operation)
		}
		span.End()
	}()

	u := *c.baseURL
	u.Path = u.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.url", u.String()))

	var reader io.Reader
	if body != nil {
		payload, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			return fmt.Errorf("failed to marshal %s request: %w", operation, errMarshal)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	c.log.Debugf("commerce %s: %s %s", operation, method, u.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return repository.ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", repository.ErrBackendUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%w: status %d: %s", repository.ErrUnexpectedResponse, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", repository.ErrUnexpectedResponse, operation, err)
	}
	return nil
}
