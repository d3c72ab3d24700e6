package reactive

import "testing"

func TestBoxGetSet(t *testing.T) {
	b := NewBox(10)

	if got := b.Get(); got != 10 {
		t.Errorf("Get() = %d, want 10", got)
	}
	b.Set(20)
	if got := b.Get(); got != 20 {
		t.Errorf("Get() = %d, want 20", got)
	}
}

func TestBoxNotifies(t *testing.T) {
	b := NewBox("initial")

	var seen []string
	c := NewComputation(func() any {
		seen = append(seen, b.Get())
		return nil
	})
	defer c.Dispose()

	b.Set("changed")
	if len(seen) != 2 || seen[1] != "changed" {
		t.Errorf("seen = %v, want [initial changed]", seen)
	}
}

func TestBoxSameValueSuppressed(t *testing.T) {
	b := NewBox(5)

	runs := 0
	c := NewComputation(func() any {
		b.Get()
		runs++
		return nil
	})
	defer c.Dispose()

	b.Set(5)
	if runs != 1 {
		t.Errorf("runs = %d after identical write, want 1", runs)
	}
}

func TestBoxUpdate(t *testing.T) {
	b := NewBox(1)

	runs := 0
	c := NewComputation(func() any {
		b.Get()
		runs++
		return nil
	})
	defer c.Dispose()

	b.Update(func(n int) int { return n * 3 })
	if got := b.Peek(); got != 3 {
		t.Errorf("Peek() = %d, want 3", got)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}

	b.Update(func(n int) int { return n })
	if runs != 2 {
		t.Errorf("runs = %d after no-op update, want 2", runs)
	}
}

func TestBoxPeekDoesNotSubscribe(t *testing.T) {
	b := NewBox(1)

	runs := 0
	c := NewComputation(func() any {
		b.Peek()
		runs++
		return nil
	})
	defer c.Dispose()

	b.Set(2)
	if runs != 1 {
		t.Errorf("runs = %d after write below Peek, want 1", runs)
	}
}

func TestBoxStructValues(t *testing.T) {
	type point struct{ X, Y int }
	b := NewBox(point{1, 2})

	runs := 0
	c := NewComputation(func() any {
		b.Get()
		runs++
		return nil
	})
	defer c.Dispose()

	// Comparable structs compare by value.
	b.Set(point{1, 2})
	if runs != 1 {
		t.Errorf("runs = %d after equal struct write, want 1", runs)
	}
	b.Set(point{3, 4})
	if runs != 2 {
		t.Errorf("runs = %d after different struct write, want 2", runs)
	}
}
