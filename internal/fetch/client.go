// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     fetch
// Description: HTTP retrieval of pages with retries
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package fetch downloads web pages and extracts their text content.
package fetch

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/msto63/taletekst/pkg/core/cache"
	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/logging"
)

// Config holds client configuration
type Config struct {
	Retries   int
	RetryWait time.Duration
	Timeout   time.Duration
	UserAgent string
	// CacheTTL keeps successful responses in memory, zero disables caching
	CacheTTL time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		Retries:   3,
		RetryWait: 2 * time.Second,
		Timeout:   30 * time.Second,
		UserAgent: "taletekst/0.1 (+corpus builder)",
		CacheTTL:  10 * time.Minute,
	}
}

// Client fetches pages over HTTP
type Client struct {
	http   *resty.Client
	cache  *cache.Cache[[]byte]
	logger *logging.Logger
}

// NewClient creates a new client. Server errors and rate limiting are
// retried; other non-2xx responses fail immediately.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}

	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(4 * cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	c := &Client{http: rc, logger: logger.Named("fetch")}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New[[]byte](cache.Config{MaxItems: 1000, TTL: cfg.CacheTTL})
	}
	return c
}

// Get returns the body of url. Cached bodies are returned without a request.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.cache == nil {
		return c.get(ctx, url)
	}
	return c.cache.GetOrSet(url, func() ([]byte, error) {
		return c.get(ctx, url)
	})
}

// CacheStats returns hit and miss counts of the response cache
func (c *Client) CacheStats() (hits, misses int64) {
	if c.cache == nil {
		return 0, 0
	}
	hits, misses, _ = c.cache.Stats()
	return hits, misses
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	timer := c.logger.StartTimer("fetch").WithLevel(logging.LevelDebug).WithField("url", url)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		timer.StopWithError(err)
		return nil, tterr.Wrap(err, tterr.CodeFetchFailed, "request failed").WithDetail("url", url)
	}
	if !resp.IsSuccess() {
		err := tterr.Newf(tterr.CodeFetchFailed, "unexpected status %d", resp.StatusCode()).
			WithDetail("url", url)
		timer.StopWithError(err)
		return nil, err
	}

	timer.WithField("bytes", len(resp.Body())).Stop()
	return resp.Body(), nil
}

// Page fetches and parses an HTML page
func (c *Client) Page(ctx context.Context, url string) (*Page, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParsePage(url, bytes.NewReader(body))
}
