package vdom

import (
	"reflect"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a tree description: one output node and its children.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child descriptions
	Key      string    // Reconciliation key
	Text     string    // For KindText
	Comp     Component // For KindComponent
}

// Props holds attributes and event handlers.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// KeyOf extracts the reconciliation key from a description.
func KeyOf(node *VNode) string {
	if node == nil {
		return ""
	}
	// Check Key field first (faster)
	if node.Key != "" {
		return node.Key
	}
	if node.Props == nil {
		return ""
	}
	if key, ok := node.Props["key"].(string); ok {
		return key
	}
	return ""
}

// HasKeys returns true if any child carries a key.
func HasKeys(children []*VNode) bool {
	for _, child := range children {
		if KeyOf(child) != "" {
			return true
		}
	}
	return false
}

// IsEventProp returns true if the prop key names an event handler
// (starts with "on"). Case-insensitive to catch onclick, onClick, OnLoad.
// Purely name-based: keys like "once" also match, so consumers must
// additionally require a function value before registering a handler.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName derives the event type from a handler prop key:
// "onclick" -> "click".
func EventName(key string) string {
	if !IsEventProp(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// PropsEqual compares two prop values for reconciliation purposes.
// Functions compare by identity so a re-render carrying the same handler
// value does not force re-registration.
func PropsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if b == nil || ra.Type() != rb.Type() {
		return false
	}
	if ra.Kind() == reflect.Func {
		return ra.Pointer() == rb.Pointer()
	}

	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}
