package dom

import (
	"reflect"

	"github.com/reago-dev/reago/pkg/vdom"
)

// Patch reconciles a live node against a previous and a next description,
// applying the minimal edits in place. It returns the node that now
// represents the next description (the same node when updated in place, a
// fresh one when replaced, nil when removed).
//
// The cases:
//   - old and new are the same description: no work at all.
//   - new is nil: the node is detached and destroyed.
//   - old is nil: node is treated as a parent container and a fresh
//     materialization of new is appended to it (this is how trees mount).
//   - old and new are incompatible (different kind, tag, or component
//     type): the node is replaced wholesale in its parent.
//   - otherwise the node is updated in place and children recurse.
func Patch(node *Node, old, new *vdom.VNode) *Node {
	if old == new {
		return node
	}

	if new == nil {
		if node != nil {
			node.Detach()
		}
		return nil
	}

	if old == nil {
		fresh := Materialize(new)
		if node != nil {
			node.appendChild(fresh)
		}
		return fresh
	}

	if node == nil {
		return Materialize(new)
	}

	if !compatible(node, old, new) {
		return replaceNode(node, new)
	}

	switch new.Kind {
	case vdom.KindText:
		node.setText(new.Text)
		return node

	case vdom.KindComponent:
		// Diff the new render against what this node was actually built
		// from. Re-rendering the old description would see current state
		// and diff to nothing.
		oldOut := node.rendered
		if oldOut == nil {
			oldOut = resolveComponent(old)
		}
		newOut := resolveComponent(new)
		result := patchRendered(node, oldOut, newOut)
		result.rendered = newOut
		return result

	case vdom.KindElement:
		patchProps(node, old.Props, new.Props)
		patchChildren(node, old.Children, new.Children)
		return node

	case vdom.KindFragment:
		patchChildren(node, old.Children, new.Children)
		return node

	default:
		return replaceNode(node, new)
	}
}

// patchRendered reconciles the output of a component whose render may
// return nil (materialized as a comment placeholder).
func patchRendered(node *Node, oldOut, newOut *vdom.VNode) *Node {
	if oldOut == nil && newOut == nil {
		return node
	}
	if oldOut == nil || newOut == nil {
		return replaceNode(node, newOut)
	}
	return Patch(node, oldOut, newOut)
}

// replaceNode swaps node for a fresh materialization of desc, keeping its
// position in the parent. Detached nodes just yield the fresh node.
func replaceNode(node *Node, desc *vdom.VNode) *Node {
	fresh := Materialize(desc)
	if node.parent != nil {
		node.parent.replaceChild(node, fresh)
	}
	return fresh
}

// compatible reports whether node can be updated in place to represent
// new, given that it currently represents old.
func compatible(node *Node, old, new *vdom.VNode) bool {
	if old.Kind != new.Kind {
		return false
	}
	switch new.Kind {
	case vdom.KindText:
		return node.kind == NodeText
	case vdom.KindElement:
		return node.kind == NodeElement && old.Tag == new.Tag
	case vdom.KindFragment:
		return node.kind == NodeFragment
	case vdom.KindComponent:
		return reflect.TypeOf(old.Comp) == reflect.TypeOf(new.Comp)
	default:
		return false
	}
}

// patchProps diffs two prop maps onto a live node. Values compare with
// PropsEqual, so handler identity survives a re-render that carries the
// same function value.
func patchProps(n *Node, old, new vdom.Props) {
	for key, oldVal := range old {
		if _, ok := new[key]; !ok {
			removeProp(n, key, oldVal)
		}
	}
	for key, newVal := range new {
		oldVal, had := old[key]
		if had && vdom.PropsEqual(oldVal, newVal) {
			continue
		}
		if key == "style" && had {
			patchStyle(n, oldVal, newVal)
			continue
		}
		applyProp(n, key, newVal)
	}
}

// patchStyle diffs two style maps per sub-property.
func patchStyle(n *Node, oldVal, newVal any) {
	oldStyles, _ := oldVal.(map[string]string)
	newStyles, ok := newVal.(map[string]string)
	if !ok {
		for k := range oldStyles {
			n.removeStyle(k)
		}
		return
	}
	for k := range oldStyles {
		if _, keep := newStyles[k]; !keep {
			n.removeStyle(k)
		}
	}
	for k, v := range newStyles {
		n.setStyle(k, v)
	}
}

// patchChildren reconciles the child lists of a container node. Keyed
// lists (any child on either side carries a key) go through the keyed
// algorithm; otherwise children match by position.
func patchChildren(n *Node, old, new []*vdom.VNode) {
	old = compact(old)
	new = compact(new)

	if vdom.HasKeys(old) || vdom.HasKeys(new) {
		patchKeyedChildren(n, old, new)
		return
	}

	live := n.Children()
	for i, nc := range new {
		if i < len(old) && i < len(live) {
			Patch(live[i], old[i], nc)
		} else {
			n.appendChild(Materialize(nc))
		}
	}
	for i := len(new); i < len(live); i++ {
		live[i].Detach()
	}
}

// oldEntry pairs a previous child description with the live node that
// currently represents it.
type oldEntry struct {
	desc  *vdom.VNode
	index int
	node  *Node
}

// patchKeyedChildren reconciles keyed child lists. Matched children are
// patched in place and moved only when they appear out of order relative
// to already-placed siblings; unmatched old children are removed and
// unmatched new children are inserted at their position. An unkeyed child
// inside a keyed list never matches and is removed and rebuilt.
//
// The move rule is the lastIndex heuristic: walking the new list
// left-to-right, a matched child whose old position is lower than the
// highest old position seen so far has been overtaken and moves to just
// after the previously placed sibling. Lists where one child moved toward
// the front cause the others to be "moved" past it one by one; that
// costs extra moves but never produces a wrong order.
func patchKeyedChildren(n *Node, old, new []*vdom.VNode) {
	live := n.Children()

	oldKeyed := make(map[string]oldEntry, len(old))
	for i, od := range old {
		key := vdom.KeyOf(od)
		if key == "" {
			continue
		}
		entry := oldEntry{desc: od, index: i}
		if i < len(live) {
			entry.node = live[i]
		}
		oldKeyed[key] = entry
	}

	newKeys := make(map[string]bool, len(new))
	for _, nc := range new {
		if key := vdom.KeyOf(nc); key != "" {
			newKeys[key] = true
		}
	}

	// Removal phase: drop old children whose key is gone, and unkeyed
	// children, before any placement happens.
	for i, od := range old {
		if i >= len(live) {
			break
		}
		key := vdom.KeyOf(od)
		if key == "" || !newKeys[key] {
			live[i].Detach()
		}
	}

	lastIndex := 0
	var lastPlaced *Node
	for _, nc := range new {
		key := vdom.KeyOf(nc)
		entry, matched := oldKeyed[key]
		if key != "" && matched && entry.node != nil {
			node := Patch(entry.node, entry.desc, nc)
			if entry.index < lastIndex {
				n.moveAfter(node, lastPlaced)
			} else {
				lastIndex = entry.index
			}
			lastPlaced = node
			continue
		}
		fresh := Materialize(nc)
		n.insertAfter(fresh, lastPlaced)
		lastPlaced = fresh
	}
}

func compact(children []*vdom.VNode) []*vdom.VNode {
	hasNil := false
	for _, c := range children {
		if c == nil {
			hasNil = true
			break
		}
	}
	if !hasNil {
		return children
	}
	out := make([]*vdom.VNode, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
