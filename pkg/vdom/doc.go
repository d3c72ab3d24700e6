// Package vdom provides tree descriptions for Reago.
//
// A VNode is an immutable-by-convention description of one output node: a
// kind discriminator, a tag or component reference, a property bag, and an
// ordered list of child descriptions. Descriptions are cheap to build on
// every render; the dom package reconciles two of them against a live tree.
//
// # Element API
//
// Elements are created using variadic factory functions that normalize
// nested and sparse children into a flat ordered sequence:
//
//	Div(Class("card"), Key("42"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// nil arguments and nil children are skipped, []*VNode slices are
// flattened, and plain strings become text nodes.
//
// # Keys
//
// A child description may carry a stable identity key (the reserved "key"
// prop, or the Key helper). Keys are used only by the reconciler to match
// children across renders; they are never applied to the output tree.
package vdom
