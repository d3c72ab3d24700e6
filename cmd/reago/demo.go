package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reago-dev/reago/pkg/dom"
	"github.com/reago-dev/reago/pkg/live"
	"github.com/reago-dev/reago/pkg/metrics"
	"github.com/reago-dev/reago/pkg/reactive"
	"github.com/reago-dev/reago/pkg/vdom"
)

func demoCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve an interactive demo app",
		Long: `Serve a small demo app that exercises the reactive core and the
reconciler: a counter, a derived value, and a keyed list you can reorder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics.Enable()

			printBanner()
			success("demo app starting")
			info("open http://localhost%s in your browser", addr)
			info("metrics at http://localhost%s/metrics", addr)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := live.New(live.Config{
				Addr: addr,
				Root: func() vdom.Component { return newDemoApp() },
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

// demoApp is the demo's root component: a counter with a derived square,
// plus a keyed item list that can be grown, reversed, and filtered.
type demoApp struct {
	count   *reactive.Box[int]
	squared *reactive.Derived[int]
	items   *reactive.Box[[]string]
	filter  *reactive.Box[string]
	nextID  int
}

func newDemoApp() *demoApp {
	app := &demoApp{
		count:  reactive.NewBox(0),
		items:  reactive.NewBox([]string{"alpha", "beta", "gamma"}),
		filter: reactive.NewBox(""),
		nextID: 4,
	}
	app.squared = reactive.NewDerived(func() int {
		n := app.count.Get()
		return n * n
	})
	return app
}

func (a *demoApp) Render() *vdom.VNode {
	return vdom.Div(
		vdom.Style(map[string]string{"font-family": "sans-serif", "max-width": "32rem", "margin": "2rem auto"}),
		vdom.H1(vdom.Text("Reago demo")),
		a.renderCounter(),
		a.renderList(),
	)
}

func (a *demoApp) renderCounter() *vdom.VNode {
	count := a.count.Get()
	return vdom.Section(
		vdom.H2(vdom.Text("Counter")),
		vdom.P(vdom.Textf("count = %d, squared = %d", count, a.squared.Get())),
		vdom.Button(vdom.OnClick(func() { a.count.Update(func(n int) int { return n + 1 }) }), vdom.Text("+1")),
		vdom.Button(vdom.OnClick(func() { a.count.Update(func(n int) int { return n - 1 }) }), vdom.Text("-1")),
		vdom.Button(vdom.OnClick(func() { a.count.Set(0) }), vdom.Text("reset")),
	)
}

func (a *demoApp) renderList() *vdom.VNode {
	filter := a.filter.Get()
	items := a.items.Get()

	visible := make([]string, 0, len(items))
	for _, item := range items {
		if filter == "" || strings.Contains(item, filter) {
			visible = append(visible, item)
		}
	}

	return vdom.Section(
		vdom.H2(vdom.Text("Keyed list")),
		vdom.Input(
			vdom.Placeholder("filter"),
			vdom.Value(filter),
			vdom.OnInput(func(ev dom.Event) { a.filter.Set(ev.Value) }),
		),
		vdom.Button(vdom.OnClick(a.addItem), vdom.Text("add")),
		vdom.Button(vdom.OnClick(a.reverseItems), vdom.Text("reverse")),
		vdom.Ul(vdom.Range(visible, func(item string, _ int) *vdom.VNode {
			return vdom.Li(
				vdom.Key(item),
				vdom.Text(item+" "),
				vdom.Button(vdom.OnClick(func() { a.removeItem(item) }), vdom.Text("x")),
			)
		})),
	)
}

func (a *demoApp) addItem() {
	item := fmt.Sprintf("item-%d", a.nextID)
	a.nextID++
	a.items.Update(func(items []string) []string {
		return append(append([]string(nil), items...), item)
	})
}

func (a *demoApp) removeItem(item string) {
	a.items.Update(func(items []string) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != item {
				out = append(out, it)
			}
		}
		return out
	})
}

func (a *demoApp) reverseItems() {
	a.items.Update(func(items []string) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[len(items)-1-i] = it
		}
		return out
	})
}
