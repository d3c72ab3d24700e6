package dom

import (
	"fmt"
	"reflect"

	"github.com/reago-dev/reago/pkg/vdom"
)

// Materialize builds a detached live node from a description. Malformed
// descriptions degrade to comment placeholders rather than failing, so a
// bad subtree never aborts the rest of an update.
func Materialize(desc *vdom.VNode) *Node {
	if desc == nil {
		return newComment("nil")
	}

	switch desc.Kind {
	case vdom.KindText:
		return newText(desc.Text)

	case vdom.KindElement:
		if desc.Tag == "" {
			return newComment("invalid element")
		}
		n := newElement(desc.Tag)
		applyProps(n, desc.Props)
		materializeChildren(n, desc.Children)
		return n

	case vdom.KindFragment:
		n := newFragment()
		materializeChildren(n, desc.Children)
		return n

	case vdom.KindComponent:
		out := resolveComponent(desc)
		n := Materialize(out)
		n.rendered = out
		return n

	default:
		return newComment("invalid node")
	}
}

// maxComponentDepth bounds component-renders-component chains so a
// self-rendering component cannot recurse forever.
const maxComponentDepth = 64

// resolveComponent renders a component description through to a concrete
// (non-component) description. Returns nil when rendering fails, which
// materializes as a comment placeholder.
func resolveComponent(desc *vdom.VNode) *vdom.VNode {
	for depth := 0; desc != nil && desc.Kind == vdom.KindComponent; depth++ {
		if depth == maxComponentDepth {
			return nil
		}
		desc = renderComponent(desc)
	}
	return desc
}

func materializeChildren(n *Node, children []*vdom.VNode) {
	for _, child := range children {
		if child == nil {
			continue
		}
		n.appendChild(Materialize(child))
	}
}

// renderComponent invokes the description's component. A nil component,
// a nil render result, or a panicking render all yield nil, which
// Materialize turns into a comment placeholder.
func renderComponent(desc *vdom.VNode) (out *vdom.VNode) {
	if desc == nil || desc.Comp == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return desc.Comp.Render()
}

func applyProps(n *Node, props vdom.Props) {
	for key, value := range props {
		applyProp(n, key, value)
	}
}

// isHandlerValue reports whether a prop value can act as an event
// handler. Only function values qualify; an "on"-named prop carrying
// anything else ("once", "onset") is a plain attribute.
func isHandlerValue(value any) bool {
	return value != nil && reflect.TypeOf(value).Kind() == reflect.Func
}

// applyProp writes one prop onto a live node. "key" is reconciliation
// metadata and never reaches the output.
func applyProp(n *Node, key string, value any) {
	if key == "key" {
		return
	}
	if vdom.IsEventProp(key) {
		if isHandlerValue(value) {
			// A previous non-function value may have set an attribute
			// under the same key.
			n.removeAttr(key)
			n.addHandler(vdom.EventName(key), value)
			return
		}
		// And vice versa: a stale handler gives way to the attribute.
		n.removeHandler(vdom.EventName(key))
	}
	if key == "style" {
		if styles, ok := value.(map[string]string); ok {
			for k, v := range styles {
				n.setStyle(k, v)
			}
		}
		return
	}
	switch v := value.(type) {
	case bool:
		// Boolean attributes: present when true, absent when false.
		if v {
			n.setAttr(key, "")
		} else {
			n.removeAttr(key)
		}
	case nil:
		n.removeAttr(key)
	default:
		n.setAttr(key, propString(value))
	}
}

// removeProp undoes one prop.
func removeProp(n *Node, key string, old any) {
	if key == "key" {
		return
	}
	if vdom.IsEventProp(key) && isHandlerValue(old) {
		n.removeHandler(vdom.EventName(key))
		return
	}
	if key == "style" {
		if styles, ok := old.(map[string]string); ok {
			for k := range styles {
				n.removeStyle(k)
			}
		}
		return
	}
	n.removeAttr(key)
}

func propString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
