package notion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	assert.Equal(t, 5.0, NewRateLimiter(5).Limit())
	assert.Equal(t, float64(DefaultRequestsPerSecond), NewRateLimiter(0).Limit())
	assert.Equal(t, float64(DefaultRequestsPerSecond), NewRateLimiter(-1).Limit())
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("first token is immediate", func(t *testing.T) {
		rl := NewRateLimiter(1)
		start := time.Now()
		require.NoError(t, rl.Wait(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		rl := NewRateLimiter(0.001)
		require.NoError(t, rl.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, rl.Wait(ctx))
	})
}
