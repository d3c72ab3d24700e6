package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine.
// Each goroutine has its own context so that concurrent renders and
// computations never attribute reads to each other.
type trackingContext struct {
	// stack holds the Computations currently running on this goroutine,
	// innermost last. The top of the stack is the active Computation that
	// reads attribute to. Keeping the full stack (rather than a single
	// slot) lets nested Computations restore the previous active one on
	// exit and lets re-entrant invocations be detected by membership.
	stack []*Computation
}

// trackingContexts stores per-goroutine tracking contexts.
// Using sync.Map for concurrent access from multiple goroutines.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// This uses the runtime stack to extract the goroutine ID.
// Note: This is an implementation detail and should not be relied upon externally.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> "
	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine.
// If no context exists, creates a new one.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// push makes c the active Computation for this goroutine.
func (tc *trackingContext) push(c *Computation) {
	tc.stack = append(tc.stack, c)
}

// pop restores the previously active Computation.
func (tc *trackingContext) pop() {
	if n := len(tc.stack); n > 0 {
		tc.stack = tc.stack[:n-1]
	}
}

// top returns the active Computation, or nil when no tracking is active.
func (tc *trackingContext) top() *Computation {
	if n := len(tc.stack); n > 0 {
		return tc.stack[n-1]
	}
	return nil
}

// contains reports whether c is anywhere on the call stack. Used as the
// re-entrancy guard: a Computation that triggers itself is suppressed
// rather than run again, so self-triggered writes cannot recurse.
func (tc *trackingContext) contains(c *Computation) bool {
	for _, s := range tc.stack {
		if s == c {
			return true
		}
	}
	return false
}

// currentComputation returns the active Computation for this goroutine.
// Returns nil if no tracking is active.
func currentComputation() *Computation {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return ctx.(*trackingContext).top()
	}
	return nil
}

// Active returns the Computation currently tracking reads on this
// goroutine. Callers that require a tracked context should use this to
// fail descriptively instead of silently reading a nil slot.
func Active() (*Computation, error) {
	c := currentComputation()
	if c == nil {
		return nil, ErrNoActiveComputation
	}
	return c, nil
}

// IsTracking reports whether a Computation is currently active on this
// goroutine. Reads and writes outside a tracked context are inert
// pass-throughs.
func IsTracking() bool {
	return currentComputation() != nil
}
