// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package remote

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/avoronov/notevault/internal/logger"
)

// Defaults for the retry policy. A slot of 100ms with ten attempts caps
// the cumulative worst-case wait at around a minute and a half.
const (
	DefaultMaxAttempts = 10
	DefaultBaseSlot    = 100 * time.Millisecond
)

// Retrier wraps a single remote operation with binary-exponential backoff
// and jitter. Before retry n (1-based) the wait is a uniform draw from
// [0, 2^n - 1] slots of BaseSlot.
//
// Only failures classified transient are retried. Classified fatal
// failures and unclassified errors propagate after the single attempt.
// The Retrier is transport-agnostic and knows nothing about pages or
// files; it wraps any remote call.
type Retrier struct {
	maxAttempts int
	baseSlot    time.Duration
	logger      *logger.Logger
}

// NewRetrier constructs a Retrier. Non-positive maxAttempts or baseSlot
// fall back to the package defaults.
func NewRetrier(maxAttempts int, baseSlot time.Duration, log *logger.Logger) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseSlot <= 0 {
		baseSlot = DefaultBaseSlot
	}
	return &Retrier{maxAttempts: maxAttempts, baseSlot: baseSlot, logger: log}
}

// Do runs op until it succeeds, fails terminally, or the attempt budget is
// exhausted, in which case the last transient error is returned. Backoff
// sleeps respect ctx cancellation.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	attempt := 0

	return retry.Do(ctx, r.backoff(&attempt), func(ctx context.Context) error {
		err := op()
		if err == nil {
			return nil
		}

		var rerr *Error
		if errors.As(err, &rerr) && rerr.Kind == KindTransient {
			r.logger.Warn().
				Int("attempt", attempt+1).
				Int("max_attempts", r.maxAttempts).
				Int("status", rerr.Status).
				Msg("transient remote failure, will retry")
			return retry.RetryableError(err)
		}

		// Fatal or unclassified: no retry will help.
		return err
	})
}

// DoResult is the generic form of [Retrier.Do] for operations that return
// a value, such as ObjectStore.Get.
func DoResult[T any](ctx context.Context, r *Retrier, op func() (T, error)) (T, error) {
	var out T
	err := r.Do(ctx, func() error {
		v, opErr := op()
		if opErr != nil {
			return opErr
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *Retrier) backoff(attempt *int) retry.Backoff {
	return retry.WithMaxRetries(uint64(r.maxAttempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		*attempt++
		return r.wait(*attempt), false
	}))
}

// wait draws the jittered backoff before retry attempt (1-based).
func (r *Retrier) wait(attempt int) time.Duration {
	if attempt > 30 {
		attempt = 30 // keep the shift within int range
	}
	slots := rand.Intn(1 << attempt) // uniform in [0, 2^attempt - 1]
	return time.Duration(slots) * r.baseSlot
}
