// Package ratelimit implements a fixed-window attempt limiter keyed by
// client identity. A window admits a maximum number of attempts; once the
// window's reset time passes, the counter starts over as if no prior
// attempts occurred. A burst straddling a window boundary is therefore
// undercounted; this is a fixed window, not a sliding log.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds limiter tuning parameters.
type Config struct {
	// Window is the fixed window length (default: 15m).
	Window time.Duration `yaml:"window" mapstructure:"window"`
	// MaxAttempts is the attempt budget per window per key (default: 5).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// SweepInterval is how often expired entries are evicted (default: 5m).
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Window == 0 {
		c.Window = 15 * time.Minute
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

// Result is the outcome of a single attempt check.
type Result struct {
	// Blocked reports whether the attempt budget is exhausted.
	Blocked bool
	// Remaining is the number of attempts left in the current window.
	Remaining int
	// ResetAt is when the current window ends and the counter resets.
	ResetAt time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter tracks attempt counts per client key. It owns its keyed map
// exclusively; all read-modify-write access is serialized under one mutex
// so two concurrent requests for the same key cannot both observe the last
// free attempt slot.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	cfg     Config

	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a Limiter and starts its background sweep of expired entries.
// Call Stop to halt the sweep when the limiter is no longer needed.
func New(cfg Config) *Limiter {
	cfg.ApplyDefaults()
	l := &Limiter{
		entries: make(map[string]*entry),
		cfg:     cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Check records an attempt for the key and reports whether it is admitted.
// Blocked attempts are not counted; an elapsed window fully resets the
// counter. The whole check-then-act sequence runs atomically per call.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(l.cfg.Window)}
		l.entries[key] = e
		return Result{Remaining: l.cfg.MaxAttempts - 1, ResetAt: e.resetAt}
	}

	if e.count >= l.cfg.MaxAttempts {
		return Result{Blocked: true, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Result{Remaining: l.cfg.MaxAttempts - e.count, ResetAt: e.resetAt}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop halts the background sweep. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictExpired()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
