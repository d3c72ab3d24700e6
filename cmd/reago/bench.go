package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/reago-dev/reago/pkg/dom"
	"github.com/reago-dev/reago/pkg/reactive"
	"github.com/reago-dev/reago/pkg/vdom"
)

func benchCmd() *cobra.Command {
	var (
		iterations int
		fanout     int
		listSize   int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure the reactive core and the reconciler",
		Long: `Run in-process measurements: signal fan-out (one value observed by
many computations) and keyed list shuffles through the reconciler.`,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			benchFanout(iterations, fanout)
			benchKeyedShuffle(iterations, listSize)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 10000, "Writes/patches per benchmark")
	cmd.Flags().IntVar(&fanout, "fanout", 100, "Computations observing one value")
	cmd.Flags().IntVar(&listSize, "list-size", 100, "Keyed list length")

	return cmd
}

// benchFanout measures one write notifying many computations.
func benchFanout(iterations, fanout int) {
	box := reactive.NewBox(0)
	comps := make([]*reactive.Computation, fanout)
	var runs int
	for i := range comps {
		comps[i] = reactive.NewComputation(func() any {
			box.Get()
			runs++
			return nil
		})
	}

	start := time.Now()
	for i := 1; i <= iterations; i++ {
		box.Set(i)
	}
	elapsed := time.Since(start)

	for _, c := range comps {
		c.Dispose()
	}

	success("fan-out: %d writes × %d observers in %v", iterations, fanout, elapsed.Round(time.Millisecond))
	info("%.0f notifications/sec", float64(iterations*fanout)/elapsed.Seconds())
}

// benchKeyedShuffle measures reconciling a shuffled keyed list.
func benchKeyedShuffle(iterations, listSize int) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]string, listSize)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}

	renderList := func(keys []string) *vdom.VNode {
		return vdom.Ul(vdom.Range(keys, func(key string, _ int) *vdom.VNode {
			return vdom.Li(vdom.Key(key), vdom.Text(key))
		}))
	}

	doc := dom.NewDocument()
	prev := renderList(keys)
	node := dom.Patch(doc.Root(), nil, prev)
	doc.Drain()

	var mutations int
	start := time.Now()
	for i := 0; i < iterations; i++ {
		rng.Shuffle(len(keys), func(a, b int) { keys[a], keys[b] = keys[b], keys[a] })
		next := renderList(keys)
		node = dom.Patch(node, prev, next)
		prev = next
		mutations += len(doc.Drain())
	}
	elapsed := time.Since(start)

	success("keyed shuffle: %d patches of %d items in %v", iterations, listSize, elapsed.Round(time.Millisecond))
	info("%.0f patches/sec, %.1f mutations/patch", float64(iterations)/elapsed.Seconds(), float64(mutations)/float64(iterations))
}
