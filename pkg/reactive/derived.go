package reactive

import (
	"sync"
	"sync/atomic"
)

// Derived is a read-only tracked value backed by a lazy, cached
// Computation. The getter runs only when the value is read while dirty;
// a dependency change merely marks it dirty and notifies the Derived's
// own subscribers, so dirtiness propagates through chains of Derived
// values without recomputation cascades.
type Derived[T any] struct {
	mu    sync.Mutex
	value T

	// dirty starts true so the first read forces a computation.
	dirty atomic.Bool

	// comp is the backing lazy Computation. Running it recomputes the
	// cached value and, as a side effect of running tracked, re-subscribes
	// to whatever the getter read this time.
	comp *Computation

	// dep holds the Derived's own subscribers: Computations that read it.
	dep dep
}

// NewDerived creates a Derived value over getter. The getter does not run
// until the first Get.
func NewDerived[T any](getter func() T) *Derived[T] {
	d := &Derived[T]{}
	d.dirty.Store(true)
	d.comp = NewComputation(func() any {
		v := getter()
		d.mu.Lock()
		d.value = v
		d.mu.Unlock()
		return v
	}, Lazy(), WithScheduler(d.invalidate))
	return d
}

// Get returns the cached value, recomputing it first if a dependency
// changed since the last read. Reading a Derived inside a Computation
// subscribes that Computation to the Derived itself, so it re-runs when
// the Derived's underlying dependencies eventually change it again.
func (d *Derived[T]) Get() T {
	d.dep.depend()

	if d.dirty.Load() {
		d.comp.Run()
		d.dirty.Store(false)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Peek returns the value without subscribing. It still recomputes if
// dirty.
func (d *Derived[T]) Peek() T {
	if d.dirty.Load() {
		d.comp.Run()
		d.dirty.Store(false)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Dispose detaches the Derived from its dependencies. Later reads return
// the last cached value.
func (d *Derived[T]) Dispose() {
	d.comp.Dispose()
	d.dirty.Store(false)
}

// invalidate is the backing Computation's scheduler: flip dirty and pass
// the notification on to the Derived's own subscribers, without eagerly
// recomputing. The CAS keeps an already-dirty Derived from re-notifying.
func (d *Derived[T]) invalidate() {
	if d.dirty.CompareAndSwap(false, true) {
		d.dep.notify()
	}
}
