package vdom

import "fmt"

// El creates an element description with the given tag. Arguments can be:
// nil, Attr, []Attr, EventHandler, *VNode, []*VNode, Component, or string.
// Children are flattened into one ordered sequence; nils are skipped.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes and children)
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))

		default:
			// Anything else renders as its formatted text
			node.Children = append(node.Children, Textf("%v", v))
		}
	}

	return node
}

// applyAttr stores one attribute on the node, mirroring the "key" prop
// into the Key field for fast lookup during reconciliation.
func applyAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
	}
	node.Props[a.Key] = a.Value
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := El("", children...)
	node.Kind = KindFragment
	node.Tag = ""
	return node
}

// Common elements.

func Div(args ...any) *VNode      { return El("div", args...) }
func Span(args ...any) *VNode     { return El("span", args...) }
func P(args ...any) *VNode        { return El("p", args...) }
func H1(args ...any) *VNode       { return El("h1", args...) }
func H2(args ...any) *VNode       { return El("h2", args...) }
func H3(args ...any) *VNode       { return El("h3", args...) }
func Ul(args ...any) *VNode       { return El("ul", args...) }
func Ol(args ...any) *VNode       { return El("ol", args...) }
func Li(args ...any) *VNode       { return El("li", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Form(args ...any) *VNode     { return El("form", args...) }
func A(args ...any) *VNode        { return El("a", args...) }
func Img(args ...any) *VNode      { return El("img", args...) }
func Section(args ...any) *VNode  { return El("section", args...) }
func Header(args ...any) *VNode   { return El("header", args...) }
func Footer(args ...any) *VNode   { return El("footer", args...) }
func Main(args ...any) *VNode     { return El("main", args...) }
func Nav(args ...any) *VNode      { return El("nav", args...) }
func Strong(args ...any) *VNode   { return El("strong", args...) }
func Em(args ...any) *VNode       { return El("em", args...) }
func Pre(args ...any) *VNode      { return El("pre", args...) }
func Code(args ...any) *VNode     { return El("code", args...) }
func Table(args ...any) *VNode    { return El("table", args...) }
func Tr(args ...any) *VNode       { return El("tr", args...) }
func Td(args ...any) *VNode       { return El("td", args...) }
func Th(args ...any) *VNode       { return El("th", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
