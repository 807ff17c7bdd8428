// Package catalog reads products from a remote storefront catalog API. Calls
// go through a circuit breaker so a failing catalog is cut off quickly instead
// of stalling cart requests.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/logging"
	"dermayooth-storefront/internal/metrics"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("catalog: unavailable")

// BreakerConfig tunes the circuit breaker.
type BreakerConfig struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	Interval    time.Duration
	// Timeout is how long the breaker stays open.
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "catalog",
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

// New returns a client for the catalog rooted at baseURL, for example
// "https://dermayooth.com/api". A nil httpClient gets a 5 second timeout.
func New(baseURL string, httpClient *http.Client, cfg BreakerConfig, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if cfg.Name == "" {
		cfg.Name = "catalog"
	}
	logger = logging.OrNop(logger)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		// A missing product is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("catalog breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CatalogBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}
	metrics.CatalogBreakerState.WithLabelValues(cfg.Name).Set(0)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// List fetches the catalog and keeps active products matching filter. The
// remote endpoint may answer with a bare array or with {"products": [...]}.
func (c *Client) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	products, err := decodeProducts(body)
	if err != nil {
		return nil, err
	}
	return applyFilter(products, filter), nil
}

// Get fetches one product. Missing and non-active products are
// domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	body, err := c.get(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	if !p.Active() {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// State reports the breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog GET %s: %w", path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		if err != nil {
			return nil, fmt.Errorf("read catalog response: %w", err)
		}
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrNotFound
		case resp.StatusCode >= 300:
			return nil, fmt.Errorf("catalog GET %s: status %d", path, resp.StatusCode)
		}
		return data, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Debug("catalog breaker rejected request", zap.String("path", path))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, err
}

func decodeProducts(body []byte) ([]domain.Product, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []domain.Product
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		return list, nil
	}
	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return wrapped.Products, nil
}

func applyFilter(products []domain.Product, filter domain.ProductFilter) []domain.Product {
	limit := filter.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Status == "" {
			p.Status = domain.ProductStatusActive
		}
		if !p.Active() {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
