package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/reago-dev/reago/pkg/metrics"
)

// Computation is a re-runnable unit of work whose reads are tracked.
// While running, it is the active tracking context for its goroutine:
// every Observed, Box, or Derived read inside the body subscribes the
// Computation to that exact value. When any of those values later changes,
// the Computation re-runs (or its scheduler is invoked instead).
//
// Before each re-run all prior subscriptions are removed, so a body that
// stops reading a value stops reacting to it.
type Computation struct {
	id uint64

	// fn is the tracked body.
	fn func() any

	// scheduler, when set, is invoked on dependency changes in place of a
	// direct re-run. Derived values use this to propagate dirtiness without
	// recomputing; hosts can use it to layer batching on top of the engine.
	scheduler func()

	// lazy suppresses the initial run at construction time.
	lazy bool

	// active gates re-runs. A deactivated Computation is skipped by
	// notifications and behaves as an inert pass-through when invoked
	// directly. Deactivation does not interrupt a run already in progress.
	active atomic.Bool

	// deps are the registry entries this Computation subscribed to during
	// its last run.
	deps   []*dep
	depsMu sync.Mutex

	// lastResult is the value produced by the most recent completed
	// tracked run. Re-entrant self-triggers return it instead of running
	// the body again.
	lastResult   any
	lastResultMu sync.Mutex
}

// ComputationOption configures a Computation at construction time.
type ComputationOption interface {
	applyComputation(c *Computation)
}

type computationOptionFunc func(*Computation)

func (f computationOptionFunc) applyComputation(c *Computation) { f(c) }

// Lazy defers the first run until Run is called explicitly.
// Derived values are built on lazy Computations.
func Lazy() ComputationOption {
	return computationOptionFunc(func(c *Computation) {
		c.lazy = true
	})
}

// WithScheduler replaces direct re-execution on dependency changes with a
// call to fn. The Computation still tracks dependencies normally when run.
func WithScheduler(fn func()) ComputationOption {
	return computationOptionFunc(func(c *Computation) {
		c.scheduler = fn
	})
}

// NewComputation creates a Computation around fn and, unless Lazy() is
// given, runs it immediately to establish its initial dependencies.
//
// Example:
//
//	count := NewBox(0)
//	NewComputation(func() any {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	count.Set(1) // re-runs the body synchronously
func NewComputation(fn func() any, opts ...ComputationOption) *Computation {
	c := &Computation{
		id: nextID(),
		fn: fn,
	}
	c.active.Store(true)

	for _, opt := range opts {
		opt.applyComputation(c)
	}

	if !c.lazy {
		c.Run()
	}
	return c
}

// ID returns the unique identifier for this Computation.
func (c *Computation) ID() uint64 {
	return c.id
}

// Active reports whether the Computation still reacts to changes.
func (c *Computation) Active() bool {
	return c.active.Load()
}

// SetActive toggles whether the Computation reacts to changes. Lifecycle
// layers clear it on unmount; a cleared Computation invoked directly runs
// its body once with no tracking side effects.
func (c *Computation) SetActive(active bool) {
	c.active.Store(active)
}

// Dispose deactivates the Computation and removes its subscriptions.
// A run already in progress is not interrupted.
func (c *Computation) Dispose() {
	c.active.Store(false)
	c.cleanup()
}

// Run executes the body and returns its result.
//
// A deactivated Computation executes the body once without tracking.
// A Computation already on this goroutine's stack (a write inside its own
// body triggered it again) is suppressed: the nested invocation returns
// the result of the last completed run without executing the body, so a
// body that unconditionally writes one of its own dependencies cannot
// recurse. Otherwise the previous subscriptions are removed, the
// Computation becomes the active tracking context for the duration of the
// body, and the prior context is restored on exit even if the body panics.
func (c *Computation) Run() any {
	if !c.active.Load() {
		return c.fn()
	}

	tc := getTrackingContext()
	if tc.contains(c) {
		return c.result()
	}

	c.cleanup()

	tc.push(c)
	defer tc.pop()

	metrics.RecordComputationRun()
	out := c.fn()
	c.setResult(out)
	return out
}

func (c *Computation) result() any {
	c.lastResultMu.Lock()
	defer c.lastResultMu.Unlock()
	return c.lastResult
}

func (c *Computation) setResult(v any) {
	c.lastResultMu.Lock()
	c.lastResult = v
	c.lastResultMu.Unlock()
}

// addDep records a registry entry this Computation subscribed to, so
// cleanup can unsubscribe before the next run. Deduplicates by identity.
func (c *Computation) addDep(d *dep) {
	c.depsMu.Lock()
	defer c.depsMu.Unlock()

	for _, existing := range c.deps {
		if existing == d {
			return
		}
	}
	c.deps = append(c.deps, d)
}

// cleanup removes every current subscription. Called before each tracked
// run and on Dispose, so stale edges never accumulate.
func (c *Computation) cleanup() {
	c.depsMu.Lock()
	deps := c.deps
	c.deps = nil
	c.depsMu.Unlock()

	for _, d := range deps {
		d.remove(c)
	}
}
