/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides exponential backoff for provider API calls.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config configures retry behavior for provider API calls. Rate limits on
// model endpoints are quota based, so the defaults back off longer than a
// typical HTTP retry would.
type Config struct {
	// MaxAttempts is the number of retries after the first call (default: 5).
	// 0 disables retrying.
	MaxAttempts int
	// BaseBackoff is the initial backoff duration (default: 1s).
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential backoff (default: 60s).
	MaxBackoff time.Duration
	// MaxJitter is the maximum random jitter added to each backoff
	// (default: 500ms).
	MaxJitter time.Duration
}

// Validate checks that the configuration has valid values.
func (c Config) Validate() error {
	if c.MaxAttempts < 0 {
		return errors.New("max attempts cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// DefaultConfig returns a configuration tuned for quota and rate limit
// errors from model provider endpoints.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Do executes fn with exponential backoff, retrying only errors the
// isRetryable classifier accepts. The operation name appears in retry
// logs and the terminal error.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxAttempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !isRetryable(lastErr) {
			return result, lastErr
		}

		if attempt >= cfg.MaxAttempts {
			break
		}

		// BaseBackoff * 2^attempt, capped at MaxBackoff.
		backoff := min(cfg.BaseBackoff<<attempt, cfg.MaxBackoff)

		// Random jitter to avoid thundering herd.
		var jitter time.Duration
		if cfg.MaxJitter > 0 {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.MaxJitter)))
			if err == nil {
				jitter = time.Duration(n.Int64())
			}
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_attempts", cfg.MaxAttempts).
			With("backoff", backoff+jitter).
			With("error", lastErr.Error()).
			Warn("Transient provider error, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff + jitter):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxAttempts, lastErr)
}
