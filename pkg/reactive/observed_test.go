package reactive

import (
	"reflect"
	"testing"
)

func TestObservedGetSet(t *testing.T) {
	o := NewObserved(map[string]any{"name": "ada", "age": 36})

	if got := o.Get("name"); got != "ada" {
		t.Errorf("Get(name) = %v, want ada", got)
	}
	o.Set("age", 37)
	if got := o.Get("age"); got != 37 {
		t.Errorf("Get(age) = %v, want 37", got)
	}
	if got := o.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestObservedInitialMapCopied(t *testing.T) {
	initial := map[string]any{"x": 1}
	o := NewObserved(initial)
	initial["x"] = 99

	if got := o.Get("x"); got != 1 {
		t.Errorf("Get(x) = %v, want 1 (caller's map should not be shared)", got)
	}
}

func TestObservedHasKeys(t *testing.T) {
	o := NewObserved(map[string]any{"b": 2, "a": 1})

	if !o.Has("a") {
		t.Error("Has(a) = false, want true")
	}
	if o.Has("c") {
		t.Error("Has(c) = true, want false")
	}
	if got, want := o.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestObservedKeyPrecision(t *testing.T) {
	o := NewObserved(map[string]any{"a": 1, "b": 2})

	runs := 0
	c := NewComputation(func() any {
		o.Get("a")
		runs++
		return nil
	})
	defer c.Dispose()

	if runs != 1 {
		t.Fatalf("runs = %d after construction, want 1", runs)
	}

	o.Set("b", 20)
	if runs != 1 {
		t.Errorf("runs = %d after writing unread key, want 1", runs)
	}

	o.Set("a", 10)
	if runs != 2 {
		t.Errorf("runs = %d after writing read key, want 2", runs)
	}
}

func TestObservedSameValueSuppressed(t *testing.T) {
	o := NewObserved(map[string]any{"n": 5, "s": "x"})

	runs := 0
	c := NewComputation(func() any {
		o.Get("n")
		o.Get("s")
		runs++
		return nil
	})
	defer c.Dispose()

	o.Set("n", 5)
	o.Set("s", "x")
	if runs != 1 {
		t.Errorf("runs = %d after identical writes, want 1", runs)
	}
}

func TestObservedReferenceIdentity(t *testing.T) {
	shared := []int{1, 2, 3}
	o := NewObserved(map[string]any{"list": shared})

	runs := 0
	c := NewComputation(func() any {
		o.Get("list")
		runs++
		return nil
	})
	defer c.Dispose()

	// Same slice header: identical reference, no notification.
	o.Set("list", shared)
	if runs != 1 {
		t.Errorf("runs = %d after rewriting same slice, want 1", runs)
	}

	// A distinct slice is a different value even with equal contents.
	o.Set("list", []int{1, 2, 3})
	if runs != 2 {
		t.Errorf("runs = %d after writing distinct slice, want 2", runs)
	}
}

func TestObservedUpdate(t *testing.T) {
	o := NewObserved(map[string]any{"n": 1})

	runs := 0
	c := NewComputation(func() any {
		o.Get("n")
		runs++
		return nil
	})
	defer c.Dispose()

	o.Update("n", func(v any) any { return v.(int) + 1 })
	if got := o.Peek("n"); got != 2 {
		t.Errorf("Peek(n) = %v, want 2", got)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}

	o.Update("n", func(v any) any { return v })
	if runs != 2 {
		t.Errorf("runs = %d after no-op update, want 2", runs)
	}
}

func TestObservedPeekDoesNotSubscribe(t *testing.T) {
	o := NewObserved(map[string]any{"n": 1})

	runs := 0
	c := NewComputation(func() any {
		o.Peek("n")
		runs++
		return nil
	})
	defer c.Dispose()

	o.Set("n", 2)
	if runs != 1 {
		t.Errorf("runs = %d after write below Peek, want 1", runs)
	}
}

func TestObservedUntrackedReadIsPlain(t *testing.T) {
	o := NewObserved(nil)
	o.Set("n", 1)
	if got := o.Get("n"); got != 1 {
		t.Errorf("Get(n) = %v, want 1", got)
	}
	// Writing a never-tracked key must not panic or notify anything.
	o.Set("other", 2)
}
