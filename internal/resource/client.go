// Package resource is the typed access layer for the clinical records
// backend: per-entity request methods, a tag-keyed read cache, and
// mutation-driven invalidation of subscribed reads.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medrec/medrec/internal/shared/config"
	apperrors "github.com/medrec/medrec/internal/shared/errors"
	"github.com/medrec/medrec/internal/shared/metrics"
)

// TokenSource supplies the bearer token of the active session. An empty
// token means requests go out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the backend REST API. All reads go through the tag
// cache; mutations invalidate the tags they declare. Failures surface to
// the caller as-is: the client never retries and holds no optimistic
// state.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     zerolog.Logger
	cache   *Cache
}

// New creates a client for the given backend.
func New(cfg config.APIConfig, tokens TokenSource, log zerolog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		limiter: limiter,
		log:     log.With().Str("component", "resource").Logger(),
		cache:   newCache(),
	}
}

// Invalidate drops cached reads under the given tags and refetches live
// subscriptions. Exposed for callers that need a forced refresh (the
// reports refetch action); mutations invalidate automatically.
func (c *Client) Invalidate(ctx context.Context, tags ...Tag) {
	c.cache.Invalidate(ctx, tags...)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// mutate runs a write and, on success, publishes the declared tag
// invalidations before returning, so a read issued afterwards observes
// the write.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any, invalidates ...Tag) error {
	if err := c.do(ctx, method, path, body, out); err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("mutation failed")
		return err
	}
	c.cache.Invalidate(ctx, invalidates...)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.Unavailable(err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return apperrors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(method, path, 0, time.Since(start))
		return apperrors.Unavailable(err)
	}
	defer resp.Body.Close()
	metrics.RecordAPIRequest(method, path, resp.StatusCode, time.Since(start))

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		return apperrors.FromStatus(resp.StatusCode, errorMessage(resp.Body))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, "decode response")
	}
	return nil
}

// errorMessage extracts the backend's {"message": ...} body, if any.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func datePath(base, start, end string) string {
	return fmt.Sprintf("%s?startDate=%s&endDate=%s", base, start, end)
}
