package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Exhausted(t *testing.T) {
	bounded := RetryPolicy{MaxAttempts: 3}
	assert.False(t, bounded.Exhausted(2))
	assert.True(t, bounded.Exhausted(3))

	unbounded := RetryPolicy{MaxAttempts: 0}
	assert.False(t, unbounded.Exhausted(1_000_000))
}

func TestRetryPolicy_DelayGrowsToCeiling(t *testing.T) {
	p := RetryPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2,
	}

	assert.Equal(t, 100*time.Millisecond, p.Delay(0))
	assert.Equal(t, 200*time.Millisecond, p.Delay(1))
	assert.Equal(t, 400*time.Millisecond, p.Delay(2))
	assert.Equal(t, time.Second, p.Delay(5))
	assert.Equal(t, time.Second, p.Delay(50))
}

func TestRetryPolicy_ZeroDelay(t *testing.T) {
	p := RetryPolicy{InitialDelay: 0}
	assert.Equal(t, time.Duration(0), p.Delay(0))
	assert.NoError(t, p.Sleep(context.Background(), 3))
}

func TestRetryPolicy_SleepHonoursCancellation(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Sleep(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, DefaultMaxAttempts, p.MaxAttempts)
	assert.Equal(t, DefaultInitialDelay, p.InitialDelay)
	assert.Equal(t, DefaultMaxDelay, p.MaxDelay)
}
