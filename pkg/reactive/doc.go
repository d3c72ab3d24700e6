// Package reactive provides the dependency-tracking core for Reago.
//
// Reads of tracked values performed while a Computation is running are
// recorded automatically at runtime. Writing a tracked value notifies the
// exact set of Computations that read it, synchronously, before the write
// returns.
//
// # Core Types
//
// Observed wraps a key/value record whose property accesses are intercepted:
//
//	user := NewObserved(map[string]any{"name": "Ada", "age": 36})
//	name := user.Get("name") // Read (subscribes the active Computation)
//	user.Set("age", 37)      // Write (notifies subscribers of "age" only)
//
// Box[T] is the boxed single-value equivalent:
//
//	count := NewBox(0)
//	count.Set(count.Peek() + 1)
//
// Computation is a re-runnable tracked unit of work:
//
//	c := NewComputation(func() any {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	c.Dispose() // stop reacting to changes
//
// Derived[T] is a lazily cached read-only value:
//
//	doubled := NewDerived(func() int { return count.Get() * 2 })
//	v := doubled.Get() // recomputes only if a dependency changed
//
// # Notification Model
//
// Notification is synchronous and unbatched: a Set drives every subscribed
// Computation to completion before it returns. A Computation created with
// WithScheduler has its scheduler invoked instead of being re-run, which is
// the extension point for layering deferred or coalesced scheduling on top
// of the engine.
//
// # Thread Safety
//
// Primitives are safe for concurrent use. The tracking context is
// per-goroutine: a Computation body runs on one goroutine and reads from
// other goroutines do not attribute to it.
package reactive
