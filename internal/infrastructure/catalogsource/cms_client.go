package catalogsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// maxCMSResponseSize limits the response body size
const maxCMSResponseSize = 5 * 1024 * 1024

// CMSClient talks to the headless content API. Every request runs through a
// circuit breaker so a dead CMS is skipped quickly instead of costing a
// full timeout per page view.
type CMSClient struct {
	config     CMSConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

// NewCMSClient creates a client for cfg
func NewCMSClient(cfg CMSConfig, logger *zap.Logger) (*CMSClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cms")

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "cms",
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxConsecutiveFailures
		},
		// A missing document is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, shared.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &CMSClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     logger,
	}, nil
}

// State returns the current circuit breaker state
func (c *CMSClient) State() gobreaker.State {
	return c.breaker.State()
}

// ListCategories fetches every category document
func (c *CMSClient) ListCategories(ctx context.Context, featuredOnly bool) ([]cmsCategory, error) {
	q := url.Values{}
	if featuredOnly {
		q.Set("featured", "true")
	}
	var resp cmsListResponse[cmsCategory]
	if err := c.getJSON(ctx, "/categories", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetCategory fetches a category document by uid
func (c *CMSClient) GetCategory(ctx context.Context, uid string) (*cmsCategory, error) {
	var doc cmsCategory
	if err := c.getJSON(ctx, "/categories/"+url.PathEscape(uid), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListProducts fetches product documents, optionally narrowed to a category
// uid or to featured products
func (c *CMSClient) ListProducts(ctx context.Context, categoryUID string, featuredOnly bool) ([]cmsProduct, error) {
	q := url.Values{}
	if categoryUID != "" {
		q.Set("category", categoryUID)
	}
	if featuredOnly {
		q.Set("featured", "true")
	}
	var resp cmsListResponse[cmsProduct]
	if err := c.getJSON(ctx, "/products", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetProduct fetches a product document by uid
func (c *CMSClient) GetProduct(ctx context.Context, uid string) (*cmsProduct, error) {
	var doc cmsProduct
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(uid), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *CMSClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doRequest(ctx, path, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: cms: failed to parse %s: %v", shared.ErrSourceUnavailable, path, err)
	}
	return nil
}

func (c *CMSClient) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCMSResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: cms: failed to read response: %v", shared.ErrSourceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, shared.ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: cms: HTTP %d on %s", shared.ErrSourceUnavailable, resp.StatusCode, path)
	}
	return body, nil
}
