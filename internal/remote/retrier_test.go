package remote

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/notevault/internal/logger"
)

func testRetrier(maxAttempts int) *Retrier {
	// A one-millisecond slot keeps worst-case test time in the tens of
	// milliseconds while exercising the real backoff path.
	return NewRetrier(maxAttempts, time.Millisecond, logger.Nop())
}

func TestRetrier_SucceedsAfterTransientFailures(t *testing.T) {
	r := testRetrier(10)

	attempts := 0
	err := r.Do(context.Background(), func() error {
		attempts++
		if attempts <= 3 {
			return &Error{Kind: KindTransient, Status: http.StatusServiceUnavailable}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, attempts, "expected success on the fourth attempt")
}

func TestRetrier_ExhaustsAttemptBudget(t *testing.T) {
	r := testRetrier(5)

	attempts := 0
	err := r.Do(context.Background(), func() error {
		attempts++
		return &Error{Kind: KindTransient, Status: http.StatusBadGateway}
	})

	require.Error(t, err)
	assert.Equal(t, 5, attempts)
	assert.True(t, Transient(err), "exhaustion should surface the last transient error")
}

func TestRetrier_FatalErrorAbortsImmediately(t *testing.T) {
	r := testRetrier(10)

	attempts := 0
	err := r.Do(context.Background(), func() error {
		attempts++
		return &Error{Kind: KindFatal, Status: http.StatusPaymentRequired, Reason: "quotaExceeded"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "fatal errors must not be retried")
	assert.True(t, Fatal(err))
	assert.Contains(t, err.Error(), "quotaExceeded")
}

func TestRetrier_UnclassifiedErrorPropagatesImmediately(t *testing.T) {
	r := testRetrier(10)
	boom := errors.New("connection reset by peer")

	attempts := 0
	err := r.Do(context.Background(), func() error {
		attempts++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_CancelledContextStopsBeforeFirstAttempt(t *testing.T) {
	r := testRetrier(10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := r.Do(ctx, func() error {
		attempts++
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestRetrier_WaitBoundsGrowExponentially(t *testing.T) {
	r := testRetrier(10)

	for attempt := 1; attempt <= 10; attempt++ {
		bound := time.Duration(1<<attempt) * r.baseSlot
		for i := 0; i < 64; i++ {
			d := r.wait(attempt)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.Less(t, d, bound, "attempt %d wait must stay below %v", attempt, bound)
		}
	}
}

func TestDoResult_ReturnsValueOnSuccess(t *testing.T) {
	r := testRetrier(10)

	attempts := 0
	got, err := DoResult(context.Background(), r, func() ([]byte, error) {
		attempts++
		if attempts == 1 {
			return nil, &Error{Kind: KindTransient, Status: http.StatusInternalServerError}
		}
		return []byte("page data"), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("page data"), got)
	assert.Equal(t, 2, attempts)
}

func TestDoResult_ZeroValueOnFailure(t *testing.T) {
	r := testRetrier(2)

	got, err := DoResult(context.Background(), r, func() ([]byte, error) {
		return []byte("partial"), &Error{Kind: KindTransient, Status: http.StatusServiceUnavailable}
	})

	require.Error(t, err)
	assert.Nil(t, got)
}
