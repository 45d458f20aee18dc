package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/trackflix/trackflix/internal/shared"
)

// ReadyOpts bounds the readiness probe.
type ReadyOpts struct {
	MaxAttempts int           // default 5
	BaseDelay   time.Duration // first retry delay, doubled per attempt; default 500ms
	MaxDelay    time.Duration // backoff ceiling; default 8s
}

// Health performs a single GET /health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// WaitReady probes GET /health with exponential backoff until the backend
// answers or the attempt budget is exhausted. Replaces interval polling:
// a total of MaxAttempts requests are ever issued.
func (c *Client) WaitReady(ctx context.Context, opts ReadyOpts) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 8 * time.Second
	}

	delay := opts.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		lastErr = c.Health(ctx)
		if lastErr == nil {
			return nil
		}

		c.logger.Debug("backend not ready", "attempt", attempt, "err", lastErr)

		if attempt == opts.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", shared.ErrBackendUnavailable, ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", shared.ErrBackendUnavailable, opts.MaxAttempts, lastErr)
}
