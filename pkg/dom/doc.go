// Package dom provides the live output tree and the reconciler for Reago.
//
// A Document owns a mutable Node tree. Materialize turns a tree
// description into a fresh detached Node; Patch reconciles a previous and
// a next description against a live Node, applying the minimal edits in
// place. Every applied edit appends one Mutation to the Document's
// journal, so hosts can mirror the tree elsewhere (the live package
// streams the journal to a browser) and tests can assert that an
// unchanged description produces zero mutations.
//
// The reconciler never raises errors: malformed descriptions degrade to
// comment placeholder nodes so one bad subtree cannot abort the update of
// its siblings.
//
// Tree mutation is single-threaded by contract: a Patch runs to completion
// on one goroutine before the triggering write returns.
package dom
