package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wiserate/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Config tunes the provider client. Zero values fall back to defaults.
type Config struct {
	BaseURL           string
	Provider          string // provider identifier stored with each rate
	RequestsPerMinute int
	MaxWait           time.Duration // max time to wait for a limiter slot
	MaxAttempts       int
	RetryInterval     time.Duration // initial backoff interval
}

// Client fetches rates over HTTP with a local token-bucket limit and
// retry with exponential backoff on transient failures.
type Client struct {
	http          *http.Client
	baseURL       string
	provider      string
	limiter       *rate.Limiter
	maxWait       time.Duration
	maxAttempts   int
	retryInterval time.Duration
}

func NewClient(httpClient *http.Client, cfg Config) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = 30 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = time.Second
	}
	return &Client{
		http:          httpClient,
		baseURL:       cfg.BaseURL,
		provider:      cfg.Provider,
		limiter:       rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
		maxWait:       maxWait,
		maxAttempts:   attempts,
		retryInterval: retryInterval,
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRate issues GET {base}/latest/{SOURCE} and extracts the target
// rate from the returned table. Transient failures are retried with
// jittered exponential backoff; 4xx responses and unknown targets fail
// immediately.
func (c *Client) FetchRate(ctx context.Context, pair domain.Pair) (domain.Rate, error) {
	if err := c.waitForSlot(ctx); err != nil {
		return domain.Rate{}, err
	}

	var fetched domain.Rate
	attempt := func() error {
		r, err := c.fetchOnce(ctx, pair)
		if err != nil {
			return err
		}
		fetched = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return domain.Rate{}, err
	}
	return fetched, nil
}

// waitForSlot blocks until the token bucket grants a slot, bounded by
// maxWait. Caller cancellation is passed through untouched.
func (c *Client) waitForSlot(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	if err := c.limiter.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: no request slot within %s", domain.ErrRateLimited, c.maxWait)
	}
	return nil
}

func (c *Client) fetchOnce(ctx context.Context, pair domain.Pair) (domain.Rate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.Rate{}, backoff.Permanent(fmt.Errorf("%w: parse base URL: %v", domain.ErrClient, err))
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/latest/" + pair.Source

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Rate{}, backoff.Permanent(fmt.Errorf("%w: build request for %s: %v", domain.ErrClient, pair, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Rate{}, fmt.Errorf("%w: request for %s: %v", domain.ErrTransient, pair, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return domain.Rate{}, fmt.Errorf("%w: status %d for %q: %s", domain.ErrTransient, resp.StatusCode, pair.Source, bodySnippet(resp.Body))
	case resp.StatusCode >= 400:
		return domain.Rate{}, backoff.Permanent(fmt.Errorf("%w: status %d for %q: %s", domain.ErrClient, resp.StatusCode, pair.Source, bodySnippet(resp.Body)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return domain.Rate{}, fmt.Errorf("%w: unexpected status %d for %q", domain.ErrTransient, resp.StatusCode, pair.Source)
	}

	var body latestResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Rate{}, fmt.Errorf("%w: decode response for %q: %v", domain.ErrTransient, pair.Source, err)
	}

	value, ok := body.Rates[pair.Target]
	if !ok {
		return domain.Rate{}, backoff.Permanent(fmt.Errorf("%w: no rate for %q in %q table", domain.ErrClient, pair.Target, pair.Source))
	}
	if !value.IsPositive() {
		return domain.Rate{}, backoff.Permanent(fmt.Errorf("%w: non-positive rate %s for %s", domain.ErrClient, value, pair))
	}

	return domain.Rate{
		Pair:      pair,
		Value:     value,
		FetchedAt: time.Now().UTC(),
		Provider:  c.provider,
	}, nil
}

// bodySnippet reads at most 512 bytes so error messages never carry a
// whole response body.
func bodySnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
