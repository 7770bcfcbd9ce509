// Package ratelimit throttles expensive routes per client with token
// buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry is one client's bucket on one rule.
type entry struct {
	limiter *rate.Limiter
	seen    time.Time // guarded by Limiter.mu
}

// Rule limits one route. Route is the registered pattern, for example
// "/download/:id/:template/:order".
type Rule struct {
	Method string
	Route  string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config configures a Limiter. Routes without a rule are not limited.
type Config struct {
	Enabled         bool
	Rules           []Rule
	CleanupInterval time.Duration // idle buckets are dropped after this long
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter keeps one token bucket per client and rule.
type Limiter struct {
	cfg   Config
	now   func() time.Time
	mu    sync.Mutex
	state map[string]*entry
	stop  chan struct{}
	once  sync.Once
}

// NewLimiter builds a limiter and starts its idle-bucket sweeper when
// cfg.CleanupInterval is positive. Call Stop to end the sweeper.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:   cfg,
		now:   time.Now,
		state: make(map[string]*entry),
		stop:  make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.sweep(cfg.CleanupInterval)
	}
	return l
}

// Enabled reports whether any limiting takes place.
func (l *Limiter) Enabled() bool {
	return l.cfg.Enabled && len(l.cfg.Rules) > 0
}

func (l *Limiter) match(method, route string) *Rule {
	for i := range l.cfg.Rules {
		r := &l.cfg.Rules[i]
		if r.Method == method && r.Route == route {
			return r
		}
	}
	return nil
}

// Allow consumes a token for client on the given route.
func (l *Limiter) Allow(client, method, route string) Info {
	if !l.cfg.Enabled {
		return Info{Allowed: true}
	}
	rule := l.match(method, route)
	if rule == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return Info{Allowed: true}
	}

	key := client + " " + method + " " + route
	now := l.now()

	l.mu.Lock()
	e, ok := l.state[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
		e = &entry{limiter: rate.NewLimiter(every, burst)}
		l.state[key] = e
	}
	e.seen = now
	l.mu.Unlock()

	info := Info{Limit: rule.Limit}
	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
		// Denied requests must not borrow from future tokens.
		r.CancelAt(now)
		info.RetryAfter = delay
		return info
	}
	info.Allowed = true
	info.Remaining = max(0, int(e.limiter.TokensAt(now)))
	return info
}

func (l *Limiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(every)
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets untouched for longer than idle.
func (l *Limiter) evictIdle(idle time.Duration) {
	cutoff := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.state {
		if e.seen.Before(cutoff) {
			delete(l.state, key)
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
