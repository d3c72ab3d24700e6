package vdom

import "testing"

func TestKeyOf(t *testing.T) {
	if got := KeyOf(nil); got != "" {
		t.Errorf("KeyOf(nil) = %q, want empty", got)
	}
	if got := KeyOf(&VNode{Key: "a"}); got != "a" {
		t.Errorf("KeyOf = %q, want a", got)
	}
	if got := KeyOf(&VNode{Props: Props{"key": "b"}}); got != "b" {
		t.Errorf("KeyOf = %q, want b", got)
	}
	// The Key field wins over the prop.
	if got := KeyOf(&VNode{Key: "a", Props: Props{"key": "b"}}); got != "a" {
		t.Errorf("KeyOf = %q, want a", got)
	}
	// Non-string key props are ignored.
	if got := KeyOf(&VNode{Props: Props{"key": 7}}); got != "" {
		t.Errorf("KeyOf = %q, want empty", got)
	}
}

func TestHasKeys(t *testing.T) {
	unkeyed := []*VNode{Text("a"), Div()}
	if HasKeys(unkeyed) {
		t.Error("HasKeys = true for unkeyed children")
	}

	mixed := []*VNode{Text("a"), Div(Key("x"))}
	if !HasKeys(mixed) {
		t.Error("HasKeys = false when one child is keyed")
	}
}

func TestIsEventProp(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"onclick", true},
		{"onClick", true},
		{"OnLoad", true},
		{"oninput", true},
		{"on", false},
		{"once", true}, // name-based only; consumers also require a function value
		{"class", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEventProp(tt.key); got != tt.want {
			t.Errorf("IsEventProp(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestEventName(t *testing.T) {
	if got := EventName("onclick"); got != "click" {
		t.Errorf("EventName(onclick) = %q, want click", got)
	}
	if got := EventName("onKeyDown"); got != "keydown" {
		t.Errorf("EventName(onKeyDown) = %q, want keydown", got)
	}
	if got := EventName("class"); got != "" {
		t.Errorf("EventName(class) = %q, want empty", got)
	}
}

func TestPropsEqual(t *testing.T) {
	if !PropsEqual("a", "a") || PropsEqual("a", "b") {
		t.Error("string comparison broken")
	}
	if !PropsEqual(1, 1) || PropsEqual(1, 2) {
		t.Error("int comparison broken")
	}
	if PropsEqual(1, "1") {
		t.Error("PropsEqual(1, \"1\") = true, want false")
	}
	if !PropsEqual(nil, nil) || PropsEqual(nil, "x") || PropsEqual("x", nil) {
		t.Error("nil comparison broken")
	}
	if !PropsEqual(map[string]string{"a": "1"}, map[string]string{"a": "1"}) {
		t.Error("deep-equal maps should compare equal")
	}
}

func TestPropsEqualFuncIdentity(t *testing.T) {
	f := func() {}
	g := func() {}
	if !PropsEqual(f, f) {
		t.Error("PropsEqual(f, f) = false, want true")
	}
	if PropsEqual(f, g) {
		t.Error("PropsEqual(f, g) = true, want false")
	}
}

func TestFuncComponent(t *testing.T) {
	comp := Func(func() *VNode { return Div(Text("hi")) })
	out := comp.Render()
	if out.Tag != "div" || len(out.Children) != 1 {
		t.Errorf("unexpected render output: %+v", out)
	}
}
