package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const route = "/download/:id/:template/:order"

func newTestLimiter(t *testing.T, rule Rule) (*Limiter, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(Config{Enabled: true, Rules: []Rule{rule}})
	l.now = func() time.Time { return clock }
	t.Cleanup(l.Stop)
	return l, &clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 60, Window: time.Minute, Burst: 3})

	for i := 0; i < 3; i++ {
		info := l.Allow("1.2.3.4", "GET", route)
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, info.Remaining)
	}

	info := l.Allow("1.2.3.4", "GET", route)
	assert.False(t, info.Allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 60, Window: time.Minute, Burst: 1})

	require.True(t, l.Allow("c", "GET", route).Allowed)
	require.False(t, l.Allow("c", "GET", route).Allowed)

	*clock = clock.Add(time.Second)
	assert.True(t, l.Allow("c", "GET", route).Allowed)
	assert.False(t, l.Allow("c", "GET", route).Allowed)
}

func TestLimiter_DeniedRequestsDoNotExtendWait(t *testing.T) {
	l, clock := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 30, Window: time.Minute, Burst: 1})

	require.True(t, l.Allow("c", "GET", route).Allowed)
	for i := 0; i < 5; i++ {
		info := l.Allow("c", "GET", route)
		require.False(t, info.Allowed)
		assert.Equal(t, 2*time.Second, info.RetryAfter)
	}

	*clock = clock.Add(2 * time.Second)
	info := l.Allow("c", "GET", route)
	assert.True(t, info.Allowed)
	assert.Zero(t, info.Remaining)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 1, Window: time.Minute})

	assert.True(t, l.Allow("a", "GET", route).Allowed)
	assert.False(t, l.Allow("a", "GET", route).Allowed)
	assert.True(t, l.Allow("b", "GET", route).Allowed)
}

func TestLimiter_UnmatchedRoutesPass(t *testing.T) {
	l, _ := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 1, Window: time.Minute})

	for i := 0; i < 5; i++ {
		info := l.Allow("a", "GET", "/resume")
		assert.True(t, info.Allowed)
		assert.Zero(t, info.Limit)
		assert.True(t, l.Allow("a", "POST", route).Allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(Config{Rules: []Rule{{Method: "GET", Route: route, Limit: 1, Window: time.Minute}}})
	defer l.Stop()

	assert.False(t, l.Enabled())
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("a", "GET", route).Allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 1, Window: time.Hour})

	l.Allow("a", "GET", route)
	*clock = clock.Add(10 * time.Minute)
	l.Allow("b", "GET", route)

	l.evictIdle(5 * time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.state, 1)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, Rule{Method: "GET", Route: route, Limit: 10, Window: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("a", "GET", route).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
