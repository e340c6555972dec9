// Package health runs named checks once, each under its own timeout, and
// collects their outcome.
//
// A failing critical check makes the whole run unhealthy. A failing warning
// check is reported but does not.
package health

import (
	"context"
	"sync"
	"time"
)

// CheckFunc is a health check function. It should return nil if the checked
// component is healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

// Level is the weight of a check.
type Level int

const (
	Critical Level = iota
	Warning
)

func (l Level) String() string {
	if l == Warning {
		return "warning"
	}
	return "critical"
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Level    Level
	Err      error
	Duration time.Duration
}

type check struct {
	name    string
	level   Level
	timeout time.Duration
	fn      CheckFunc
}

// Health holds a set of checks.
type Health struct {
	mu     sync.Mutex
	checks []check
}

// New creates a Health without checks.
func New() *Health {
	return &Health{}
}

// AddCheck registers a critical check.
func (h *Health) AddCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.add(check{name: name, level: Critical, timeout: timeout, fn: fn})
}

// AddWarning registers a check whose failure is reported without making the
// run unhealthy.
func (h *Health) AddWarning(name string, timeout time.Duration, fn CheckFunc) {
	h.add(check{name: name, level: Warning, timeout: timeout, fn: fn})
}

func (h *Health) add(c check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, c)
}

// Run executes all checks concurrently and returns their results in
// registration order.
func (h *Health) Run(ctx context.Context) []Result {
	h.mu.Lock()
	checks := make([]check, len(h.checks))
	copy(checks, h.checks)
	h.mu.Unlock()

	results := make([]Result, len(checks))
	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Go(func() {
			results[i] = c.run(ctx)
		})
	}
	wg.Wait()
	return results
}

func (c check) run(ctx context.Context) Result {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.fn(checkCtx)
	if err == nil && checkCtx.Err() != nil {
		err = checkCtx.Err()
	}
	return Result{
		Name:     c.name,
		Level:    c.level,
		Err:      err,
		Duration: time.Since(start),
	}
}

// Healthy reports whether no critical check failed.
func Healthy(results []Result) bool {
	for _, r := range results {
		if r.Err != nil && r.Level == Critical {
			return false
		}
	}
	return true
}
