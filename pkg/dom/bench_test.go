package dom

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/reago-dev/reago/pkg/vdom"
)

func BenchmarkMaterialize(b *testing.B) {
	desc := vdom.Div(
		vdom.Class("container"),
		vdom.Ul(vdom.Repeat(50, func(i int) *vdom.VNode {
			return vdom.Li(vdom.Key(i), vdom.Textf("item %d", i))
		})),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Materialize(desc)
	}
}

func BenchmarkPatchNoChanges(b *testing.B) {
	build := func() *vdom.VNode {
		return vdom.Ul(vdom.Repeat(50, func(i int) *vdom.VNode {
			return vdom.Li(vdom.Key(i), vdom.Textf("item %d", i))
		}))
	}
	doc := NewDocument()
	prev := build()
	node := Patch(doc.Root(), nil, prev)
	doc.Drain()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next := build()
		node = Patch(node, prev, next)
		prev = next
		doc.Drain()
	}
}

func BenchmarkPatchKeyedShuffle(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]string, 100)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	build := func() *vdom.VNode {
		return vdom.Ul(vdom.Range(keys, func(k string, _ int) *vdom.VNode {
			return vdom.Li(vdom.Key(k), vdom.Text(k))
		}))
	}

	doc := NewDocument()
	prev := build()
	node := Patch(doc.Root(), nil, prev)
	doc.Drain()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.Shuffle(len(keys), func(x, y int) { keys[x], keys[y] = keys[y], keys[x] })
		next := build()
		node = Patch(node, prev, next)
		prev = next
		doc.Drain()
	}
}
