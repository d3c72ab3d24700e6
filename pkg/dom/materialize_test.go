package dom

import (
	"testing"

	"github.com/reago-dev/reago/pkg/vdom"
)

func TestMaterializeElement(t *testing.T) {
	clicked := false
	desc := vdom.Div(
		vdom.ID("root"),
		vdom.Class("a", "b"),
		vdom.Style(map[string]string{"color": "red"}),
		vdom.OnClick(func() { clicked = true }),
		vdom.Text("hello"),
		vdom.Span(),
	)

	n := Materialize(desc)

	if n.Kind() != NodeElement || n.Tag() != "div" {
		t.Fatalf("node = %v %q", n.Kind(), n.Tag())
	}
	if v, _ := n.Attr("id"); v != "root" {
		t.Errorf("id = %q, want root", v)
	}
	if v, _ := n.Attr("class"); v != "a b" {
		t.Errorf("class = %q, want \"a b\"", v)
	}
	if v, _ := n.StyleOf("color"); v != "red" {
		t.Errorf("color = %q, want red", v)
	}
	if n.ChildCount() != 2 {
		t.Fatalf("children = %d, want 2", n.ChildCount())
	}
	if c := n.Child(0); c.Kind() != NodeText || c.Text() != "hello" {
		t.Errorf("child 0 = %v %q", c.Kind(), c.Text())
	}
	if c := n.Child(1); c.Kind() != NodeElement || c.Tag() != "span" {
		t.Errorf("child 1 = %v %q", c.Kind(), c.Tag())
	}

	n.Dispatch(Event{Type: "click"})
	if !clicked {
		t.Error("click handler not wired")
	}

	// Detached until mounted into a document.
	if n.ID() != "" {
		t.Errorf("ID = %q before mount, want empty", n.ID())
	}
}

func TestMaterializeKeyNeverApplied(t *testing.T) {
	n := Materialize(vdom.Li(vdom.Key("k1"), vdom.Text("x")))
	if _, ok := n.Attr("key"); ok {
		t.Error("reconciliation key leaked into attributes")
	}
}

func TestMaterializeBooleanAttrs(t *testing.T) {
	n := Materialize(vdom.Button(vdom.Disabled(true)))
	if v, ok := n.Attr("disabled"); !ok || v != "" {
		t.Errorf("disabled = %q, %v; want present and empty", v, ok)
	}

	n = Materialize(vdom.Button(vdom.Disabled(false)))
	if _, ok := n.Attr("disabled"); ok {
		t.Error("disabled attribute present for false")
	}
}

func TestMaterializeOnNamedAttrIsNotHandler(t *testing.T) {
	// "once" starts with "on" but carries a string, so it is a plain
	// attribute, not a handler registration.
	n := Materialize(vdom.El("track", vdom.Attr{Key: "once", Value: "true"}))
	if v, _ := n.Attr("once"); v != "true" {
		t.Errorf("once = %q, want true", v)
	}
	if n.Dispatch(Event{Type: "ce"}) {
		t.Error("non-function prop registered as a handler")
	}
}

func TestMaterializeNumericAttr(t *testing.T) {
	n := Materialize(vdom.Div(vdom.TabIndex(3)))
	if v, _ := n.Attr("tabindex"); v != "3" {
		t.Errorf("tabindex = %q, want 3", v)
	}
}

func TestMaterializeFragment(t *testing.T) {
	n := Materialize(vdom.Fragment(vdom.Text("a"), vdom.Text("b")))
	if n.Kind() != NodeFragment {
		t.Fatalf("kind = %v, want fragment", n.Kind())
	}
	if n.ChildCount() != 2 {
		t.Errorf("children = %d, want 2", n.ChildCount())
	}
}

func TestMaterializeComponent(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode { return vdom.P(vdom.Text("inner")) })
	n := Materialize(&vdom.VNode{Kind: vdom.KindComponent, Comp: comp})
	if n.Kind() != NodeElement || n.Tag() != "p" {
		t.Errorf("node = %v %q, want p element", n.Kind(), n.Tag())
	}
}

func TestMaterializeDegradations(t *testing.T) {
	cases := []struct {
		name string
		desc *vdom.VNode
	}{
		{"nil description", nil},
		{"element without tag", &vdom.VNode{Kind: vdom.KindElement}},
		{"component without Comp", &vdom.VNode{Kind: vdom.KindComponent}},
		{"component rendering nil", &vdom.VNode{
			Kind: vdom.KindComponent,
			Comp: vdom.Func(func() *vdom.VNode { return nil }),
		}},
		{"component panicking", &vdom.VNode{
			Kind: vdom.KindComponent,
			Comp: vdom.Func(func() *vdom.VNode { panic("render failure") }),
		}},
		{"unknown kind", &vdom.VNode{Kind: vdom.VKind(99)}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			n := Materialize(tt.desc)
			if n == nil {
				t.Fatal("Materialize returned nil")
			}
			if n.Kind() != NodeComment {
				t.Errorf("kind = %v, want comment placeholder", n.Kind())
			}
		})
	}
}

func TestMaterializeBadSiblingDoesNotPoisonOthers(t *testing.T) {
	n := Materialize(vdom.Div(
		vdom.Text("before"),
		&vdom.VNode{Kind: vdom.KindElement}, // no tag
		vdom.Text("after"),
	))

	assertShape(t, n, ""+
		"<div>\n"+
		"  \"before\"\n"+
		"  <!-- invalid element -->\n"+
		"  \"after\"\n")
}
