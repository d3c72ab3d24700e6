package dom

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/reago-dev/reago/pkg/metrics"
	"github.com/reago-dev/reago/pkg/vdom"
)

// NodeKind is the live node type discriminator.
type NodeKind uint8

const (
	NodeElement  NodeKind = iota // Regular element
	NodeText                     // Text node
	NodeComment                  // Placeholder/comment node
	NodeFragment                 // Transparent grouping container
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeComment:
		return "comment"
	case NodeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string name.
func (k NodeKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// Node is one live output node. Nodes are owned by the description that
// mounted them and are destroyed when that description is removed from
// its parent's children.
type Node struct {
	kind     NodeKind
	id       string
	tag      string
	text     string
	attrs    map[string]string
	styles   map[string]string
	handlers map[string]func(Event)
	parent   *Node
	children []*Node
	doc      *Document

	// rendered caches the resolved output description of the component
	// that produced this node, so the next patch diffs against what was
	// actually materialized rather than re-rendering stale state.
	rendered *vdom.VNode
}

// Event is a UI event dispatched into the live tree.
type Event struct {
	Type   string // "click", "input", ...
	Target *Node  // Set by Dispatch
	Value  string // Optional payload (input value, key name, ...)
}

func newElement(tag string) *Node {
	return &Node{kind: NodeElement, tag: tag}
}

func newText(text string) *Node {
	return &Node{kind: NodeText, text: text}
}

func newComment(text string) *Node {
	return &Node{kind: NodeComment, text: text}
}

func newFragment() *Node {
	return &Node{kind: NodeFragment}
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind { return n.kind }

// ID returns the node's document-assigned identifier ("" while detached).
func (n *Node) ID() string { return n.id }

// Tag returns the element tag name.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content of text and comment nodes.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// StyleOf returns the named style sub-property and whether it is set.
func (n *Node) StyleOf(key string) (string, bool) {
	v, ok := n.styles[key]
	return v, ok
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// HandlerNames returns the registered event names in sorted order.
func (n *Node) HandlerNames() []string {
	names := make([]string, 0, len(n.handlers))
	for name := range n.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the handler registered for ev.Type, setting ev.Target
// to the node. Returns false when no handler is registered.
func (n *Node) Dispatch(ev Event) bool {
	h := n.handlers[ev.Type]
	if h == nil {
		return false
	}
	ev.Target = n
	h(ev)
	return true
}

// Detach removes the node from its parent, destroying it as an output
// artifact. No-op for roots and already-detached nodes.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.removeChild(n)
	}
}

// indexOf returns c's position among n's children, or -1.
func (n *Node) indexOf(c *Node) int {
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

// appendChild attaches c as the last child.
func (n *Node) appendChild(c *Node) {
	n.insertAt(c, len(n.children))
}

// insertAt attaches c at position i (clamped).
func (n *Node) insertAt(c *Node, i int) {
	if c == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}

	c.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c

	if n.doc != nil {
		n.doc.adopt(c)
		n.doc.record(Mutation{Op: MutInsertNode, ParentID: n.id, Index: i, Node: c})
	}
}

// insertAfter attaches c just after ref (at the front when ref is nil).
func (n *Node) insertAfter(c, ref *Node) {
	i := 0
	if ref != nil {
		if j := n.indexOf(ref); j >= 0 {
			i = j + 1
		}
	}
	n.insertAt(c, i)
}

// moveAfter repositions the existing child c to just after ref (to the
// front when ref is nil). Records a single move, not a remove+insert.
func (n *Node) moveAfter(c, ref *Node) {
	from := n.indexOf(c)
	if from < 0 || c == ref {
		return
	}
	n.children = append(n.children[:from], n.children[from+1:]...)

	i := 0
	if ref != nil {
		if j := n.indexOf(ref); j >= 0 {
			i = j + 1
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c

	if n.doc != nil {
		n.doc.record(Mutation{Op: MutMoveNode, NodeID: c.id, ParentID: n.id, Index: i})
	}
}

// removeChild detaches c and releases its subtree.
func (n *Node) removeChild(c *Node) {
	i := n.indexOf(c)
	if i < 0 {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil

	if n.doc != nil {
		n.doc.record(Mutation{Op: MutRemoveNode, NodeID: c.id})
		n.doc.release(c)
	}
}

// replaceChild swaps old for fresh in place, releasing old's subtree.
func (n *Node) replaceChild(old, fresh *Node) {
	i := n.indexOf(old)
	if i < 0 {
		return
	}
	n.children[i] = fresh
	fresh.parent = n
	old.parent = nil

	if n.doc != nil {
		n.doc.adopt(fresh)
		n.doc.record(Mutation{Op: MutReplaceNode, NodeID: old.id, Node: fresh})
		n.doc.release(old)
	}
}

func (n *Node) setText(text string) {
	if n.text == text {
		return
	}
	n.text = text
	if n.doc != nil {
		n.doc.record(Mutation{Op: MutSetText, NodeID: n.id, Value: text})
	}
}

func (n *Node) setAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if old, ok := n.attrs[key]; ok && old == value {
		return
	}
	n.attrs[key] = value
	if n.doc != nil {
		n.doc.record(Mutation{Op: MutSetAttr, NodeID: n.id, Key: key, Value: value})
	}
}

func (n *Node) removeAttr(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	if n.doc != nil {
		n.doc.record(Mutation{Op: MutRemoveAttr, NodeID: n.id, Key: key})
	}
}

func (n *Node) setStyle(key, value string) {
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	if old, ok := n.styles[key]; ok && old == value {
		return
	}
	n.styles[key] = value
	if n.doc != nil {
		n.doc.record(Mutation{Op: MutSetStyle, NodeID: n.id, Key: key, Value: value})
	}
}

func (n *Node) removeStyle(key string) {
	if _, ok := n.styles[key]; !ok {
		return
	}
	delete(n.styles, key)
	if n.doc != nil {
		n.doc.record(Mutation{Op: MutRemoveStyle, NodeID: n.id, Key: key})
	}
}

// addHandler registers handler under the given event name. Accepted
// handler shapes are func(Event) and func().
func (n *Node) addHandler(event string, handler any) {
	fn := coerceHandler(handler)
	if fn == nil {
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[string]func(Event))
	}
	n.handlers[event] = fn
}

// removeHandler unregisters the handler for the given event name.
func (n *Node) removeHandler(event string) {
	delete(n.handlers, event)
}

func coerceHandler(handler any) func(Event) {
	switch h := handler.(type) {
	case func(Event):
		return h
	case func():
		return func(Event) { h() }
	default:
		return nil
	}
}

// MarshalJSON serializes the node subtree for journal consumers. Handlers
// are represented by their event names only.
func (n *Node) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID       string            `json:"id,omitempty"`
		Kind     NodeKind          `json:"kind"`
		Tag      string            `json:"tag,omitempty"`
		Text     string            `json:"text,omitempty"`
		Attrs    map[string]string `json:"attrs,omitempty"`
		Styles   map[string]string `json:"styles,omitempty"`
		Events   []string          `json:"events,omitempty"`
		Children []*Node           `json:"children,omitempty"`
	}
	w := wire{
		ID:       n.id,
		Kind:     n.kind,
		Tag:      n.tag,
		Text:     n.text,
		Attrs:    n.attrs,
		Styles:   n.styles,
		Children: n.children,
	}
	if len(n.handlers) > 0 {
		w.Events = n.HandlerNames()
	}
	return json.Marshal(w)
}

// Dump renders the subtree as an indented text sketch. Deterministic
// (sorted attrs, styles, events), intended for test failure diffs.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.kind {
	case NodeText:
		fmt.Fprintf(b, "%s%q\n", indent, n.text)
		return
	case NodeComment:
		fmt.Fprintf(b, "%s<!-- %s -->\n", indent, n.text)
		return
	case NodeFragment:
		fmt.Fprintf(b, "%s<> %s\n", indent, n.id)
	default:
		fmt.Fprintf(b, "%s<%s %s%s%s%s>\n", indent, n.tag, n.id,
			n.dumpPairs(n.attrs, " "), n.dumpPairs(n.styles, " style:"), n.dumpEvents())
	}
	for _, c := range n.children {
		c.dump(b, depth+1)
	}
}

func (n *Node) dumpPairs(m map[string]string, prefix string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s%s=%q", prefix, k, m[k])
	}
	return b.String()
}

func (n *Node) dumpEvents() string {
	if len(n.handlers) == 0 {
		return ""
	}
	return " on=[" + strings.Join(n.HandlerNames(), ",") + "]"
}

// Document owns a live tree: the root node, node identity, and the
// mutation journal.
type Document struct {
	mu      sync.Mutex
	root    *Node
	nextID  uint64
	byID    map[string]*Node
	journal []Mutation
}

// NewDocument creates an empty document with an element root.
func NewDocument() *Document {
	d := &Document{byID: make(map[string]*Node)}
	d.root = newElement("#document")
	d.adopt(d.root)
	return d
}

// Root returns the document root. Mount trees by patching against it with
// a nil previous description.
func (d *Document) Root() *Node {
	return d.root
}

// NodeByID resolves a node by its document-assigned identifier.
// Returns nil for unknown or released IDs.
func (d *Document) NodeByID(id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[id]
}

// Drain returns the accumulated mutations and clears the journal.
func (d *Document) Drain() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	journal := d.journal
	d.journal = nil
	return journal
}

// record appends one applied edit to the journal.
func (d *Document) record(m Mutation) {
	d.mu.Lock()
	d.journal = append(d.journal, m)
	d.mu.Unlock()

	metrics.RecordMutations(1)
}

// adopt attaches a subtree to this document, assigning identifiers to
// nodes that have none yet. IDs follow the "n<seq>" convention and are
// never reused.
func (d *Document) adopt(n *Node) {
	d.mu.Lock()
	d.adoptLocked(n)
	d.mu.Unlock()
}

func (d *Document) adoptLocked(n *Node) {
	n.doc = d
	if n.id == "" {
		d.nextID++
		n.id = "n" + strconv.FormatUint(d.nextID, 10)
	}
	d.byID[n.id] = n
	for _, c := range n.children {
		d.adoptLocked(c)
	}
}

// release detaches a subtree from document identity lookup. The nodes
// keep their IDs so journal entries referring to them stay meaningful.
func (d *Document) release(n *Node) {
	d.mu.Lock()
	d.releaseLocked(n)
	d.mu.Unlock()
}

func (d *Document) releaseLocked(n *Node) {
	delete(d.byID, n.id)
	n.doc = nil
	for _, c := range n.children {
		d.releaseLocked(c)
	}
}
