package reactive

import (
	"sort"
	"sync"
)

// Observed is a key/value record whose property accesses are intercepted.
// Every Get while a Computation is active records a dependency edge for
// that exact key; every Set whose value actually differs notifies the
// subscribers of that key only.
//
// Registry entries are created lazily on the first tracked read of a key
// and are owned by the Observed itself, so they are reclaimed with it.
type Observed struct {
	mu     sync.Mutex
	values map[string]any
	deps   map[string]*dep
}

// NewObserved wraps a plain record. The initial map is copied; later
// mutations of the caller's map are not seen.
func NewObserved(initial map[string]any) *Observed {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Observed{
		values: values,
		deps:   make(map[string]*dep),
	}
}

// Get returns the value for key and subscribes the active Computation,
// if any, to changes of that key. Reads outside a tracked context are
// plain reads.
func (o *Observed) Get(key string) any {
	o.mu.Lock()
	v := o.values[key]
	var d *dep
	if currentComputation() != nil {
		d = o.deps[key]
		if d == nil {
			d = &dep{}
			o.deps[key] = d
		}
	}
	o.mu.Unlock()

	// Subscribe after releasing the value lock: the active Computation may
	// hold its own locks while reading.
	if d != nil {
		d.depend()
	}
	return v
}

// Peek returns the value for key without subscribing.
func (o *Observed) Peek(key string) any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.values[key]
}

// Has reports whether key is present.
func (o *Observed) Has(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.values[key]
	return ok
}

// Keys returns the record's keys in sorted order, without subscribing.
func (o *Observed) Keys() []string {
	o.mu.Lock()
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	o.mu.Unlock()

	sort.Strings(keys)
	return keys
}

// Set stores value under key and, when the value actually changed,
// notifies every Computation subscribed to that key. Subscribers run to
// completion before Set returns. Writes of an identical value are
// suppressed; writes to keys nothing has read are plain writes.
func (o *Observed) Set(key string, value any) {
	o.mu.Lock()
	old := o.values[key]
	changed := !sameValue(old, value)
	if changed {
		o.values[key] = value
	}
	d := o.deps[key]
	o.mu.Unlock()

	// Notify outside the lock: subscriber bodies re-enter Get/Set freely.
	if changed && d != nil {
		d.notify()
	}
}

// Update atomically derives the new value for key from the current one.
func (o *Observed) Update(key string, fn func(any) any) {
	o.mu.Lock()
	old := o.values[key]
	next := fn(old)
	changed := !sameValue(old, next)
	if changed {
		o.values[key] = next
	}
	d := o.deps[key]
	o.mu.Unlock()

	if changed && d != nil {
		d.notify()
	}
}
