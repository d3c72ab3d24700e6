package reactive

import (
	"sync"

	"github.com/reago-dev/reago/pkg/metrics"
)

// dep is a single dependency registry entry: the set of Computations
// subscribed to one (observed object, property key) pair. Entries live
// inside the wrapper that owns them, so they become unreachable exactly
// when the observed value does; no explicit sweep is needed.
type dep struct {
	mu   sync.Mutex
	subs []*Computation
}

// depend subscribes the active Computation, if any, to this entry and
// records the reverse edge so the Computation can unsubscribe before its
// next run. A read with no active Computation is a plain read.
func (d *dep) depend() {
	c := currentComputation()
	if c == nil {
		return
	}
	d.add(c)
	c.addDep(d)
}

// add inserts a subscriber, deduplicating by Computation ID.
func (d *dep) add(c *Computation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.subs {
		if existing.id == c.id {
			return
		}
	}
	d.subs = append(d.subs, c)
}

// remove deletes a subscriber.
func (d *dep) remove(c *Computation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, existing := range d.subs {
		if existing.id == c.id {
			// Swap with last element; subscriber order is not meaningful.
			d.subs[i] = d.subs[len(d.subs)-1]
			d.subs = d.subs[:len(d.subs)-1]
			return
		}
	}
}

// notify synchronously drives every subscriber: its scheduler if it has
// one, otherwise a direct re-run. The subscriber set is snapshotted first
// so a re-run that subscribes or unsubscribes to this same entry cannot
// corrupt the iteration. Deactivated Computations are skipped.
func (d *dep) notify() {
	d.mu.Lock()
	subs := make([]*Computation, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()

	metrics.RecordNotification()

	for _, c := range subs {
		if !c.active.Load() {
			continue
		}
		if c.scheduler != nil {
			c.scheduler()
			continue
		}
		c.Run()
	}
}
