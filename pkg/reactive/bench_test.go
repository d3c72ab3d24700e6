package reactive

import "testing"

func BenchmarkBoxSetWithSubscriber(b *testing.B) {
	box := NewBox(0)
	c := NewComputation(func() any {
		return box.Get()
	})
	defer c.Dispose()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		box.Set(i)
	}
}

func BenchmarkObservedTrackedRead(b *testing.B) {
	o := NewObserved(map[string]any{"n": 1})
	c := NewComputation(func() any {
		for i := 0; i < b.N; i++ {
			o.Get("n")
		}
		return nil
	}, Lazy())
	defer c.Dispose()

	b.ResetTimer()
	c.Run()
}

func BenchmarkDerivedCachedRead(b *testing.B) {
	base := NewBox(1)
	d := NewDerived(func() int { return base.Get() * 2 })
	defer d.Dispose()
	d.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Get()
	}
}

func BenchmarkNotifyFanout(b *testing.B) {
	box := NewBox(0)
	comps := make([]*Computation, 100)
	for i := range comps {
		comps[i] = NewComputation(func() any {
			return box.Get()
		})
	}
	defer func() {
		for _, c := range comps {
			c.Dispose()
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		box.Set(i + 1)
	}
}
