package reactive

import "sync"

// Box is a single tracked value slot with the same read/write interception
// contract as an Observed record. It is the boxed-primitive counterpart:
// an Observed with one fixed pseudo-key ("value"), collapsed to a typed
// field and a single registry entry.
type Box[T any] struct {
	mu    sync.Mutex
	value T
	dep   dep
}

// NewBox creates a Box holding initial.
func NewBox[T any](initial T) *Box[T] {
	return &Box[T]{value: initial}
}

// Get returns the current value and subscribes the active Computation,
// if any.
func (b *Box[T]) Get() T {
	b.mu.Lock()
	v := b.value
	b.mu.Unlock()

	b.dep.depend()
	return v
}

// Peek returns the current value without subscribing.
func (b *Box[T]) Peek() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set stores value and notifies subscribers when it actually changed.
// Subscribers run to completion before Set returns.
func (b *Box[T]) Set(value T) {
	b.mu.Lock()
	changed := !sameValue(any(b.value), any(value))
	if changed {
		b.value = value
	}
	b.mu.Unlock()

	if changed {
		b.dep.notify()
	}
}

// Update atomically derives the new value from the current one.
func (b *Box[T]) Update(fn func(T) T) {
	b.mu.Lock()
	next := fn(b.value)
	changed := !sameValue(any(b.value), any(next))
	if changed {
		b.value = next
	}
	b.mu.Unlock()

	if changed {
		b.dep.notify()
	}
}
