package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyDo_SuccessOnFirstAttempt(t *testing.T) {
	var calls int
	err := Policy{Attempts: 3, Delay: 10 * time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicyDo_SuccessOnRetry(t *testing.T) {
	var calls int
	err := Policy{Attempts: 3, Delay: time.Millisecond, Jitter: true}.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPolicyDo_AllAttemptsExhausted(t *testing.T) {
	var calls int
	sentinel := errors.New("always fails")
	err := Policy{Attempts: 3, Delay: time.Millisecond, Jitter: true}.Do(context.Background(), func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestPolicyDo_PermanentErrorStopsRetry(t *testing.T) {
	var calls int
	sentinel := errors.New("permanent failure")
	err := Policy{Attempts: 5, Delay: time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls, "permanent error should stop retries")

	var pe *PermanentError
	assert.False(t, errors.As(err, &pe), "the wrapper is removed")
}

func TestPolicyDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := Policy{Attempts: 10, Delay: 100 * time.Millisecond}.Do(ctx, func() error {
		calls.Add(1)
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, calls.Load(), int32(3))
}

func TestPolicy_ZeroAttemptsRunsOnce(t *testing.T) {
	var calls int
	err := Policy{}.Do(context.Background(), func() error {
		calls++
		return errors.New("fail")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicy_FixedDelay(t *testing.T) {
	var timestamps []time.Time
	err := Policy{Attempts: 3, Delay: 20 * time.Millisecond}.Do(context.Background(), func() error {
		timestamps = append(timestamps, time.Now())
		return errors.New("fail")
	})
	require.Error(t, err)
	require.Len(t, timestamps, 3)

	for i := 1; i < len(timestamps); i++ {
		assert.GreaterOrEqual(t, timestamps[i].Sub(timestamps[i-1]), 20*time.Millisecond)
	}
}

func TestPolicy_JitterStaysInBounds(t *testing.T) {
	p := Policy{Delay: 100 * time.Millisecond, Jitter: true}
	for i := 0; i < 100; i++ {
		d := p.wait(p.Delay)
		assert.GreaterOrEqual(t, d, 75*time.Millisecond)
		assert.LessOrEqual(t, d, 125*time.Millisecond)
	}
	assert.Equal(t, 100*time.Millisecond, Policy{}.wait(100*time.Millisecond))
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}

func TestPermanent_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	assert.ErrorIs(t, Permanent(inner), inner)
}
