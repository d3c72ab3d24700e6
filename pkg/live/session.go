package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/reago-dev/reago/pkg/dom"
	"github.com/reago-dev/reago/pkg/metrics"
	"github.com/reago-dev/reago/pkg/reactive"
	"github.com/reago-dev/reago/pkg/vdom"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
)

// pingInterval is how often the session pings an otherwise idle client to
// keep the read deadline moving. Must stay well under readTimeout. A var so
// tests can shorten it.
var pingInterval = 30 * time.Second

// frame is one server-to-client message: either the full initial tree or
// a batch of mutations.
type frame struct {
	Type      string         `json:"type"` // "tree" or "mutations"
	Seq       uint64         `json:"seq"`
	Root      *dom.Node      `json:"root,omitempty"`
	Mutations []dom.Mutation `json:"mutations,omitempty"`
}

// clientEvent is one browser-to-server message.
type clientEvent struct {
	Node  string `json:"node"`
	Event string `json:"event"`
	Value string `json:"value,omitempty"`
}

// Session drives one connected client: it owns the component instance,
// its Document, and the render computation, and it bridges events and
// mutations over the WebSocket.
//
// All tree work happens on the session's read loop goroutine. Reactive
// writes made by event handlers notify synchronously; the session's
// scheduler only marks the render dirty, so a handler that writes several
// signals still produces a single re-render per event.
type Session struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger
	tracer trace.Tracer

	comp   vdom.Component
	doc    *dom.Document
	render *reactive.Computation
	prev   *vdom.VNode
	node   *dom.Node

	dirty atomic.Bool
	seq   atomic.Uint64

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, comp vdom.Component, logger *slog.Logger, tracer trace.Tracer) *Session {
	id := ulid.Make().String()
	return &Session{
		id:     id,
		conn:   conn,
		logger: logger.With("session", id),
		tracer: tracer,
		comp:   comp,
		doc:    dom.NewDocument(),
	}
}

// Run performs the initial render, streams it, and then serves the event
// loop until the connection closes or ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	metrics.RecordSessionStart()
	defer metrics.RecordSessionEnd()
	defer s.conn.Close()
	defer s.dispose()

	s.logger.Info("session started")

	s.render = reactive.NewComputation(func() any {
		next := s.comp.Render()
		s.node = dom.Patch(s.firstTarget(), s.prev, next)
		s.prev = next
		return nil
	}, reactive.Lazy(), reactive.WithScheduler(s.markDirty))

	s.render.Run()
	s.doc.Drain() // the initial tree ships whole, not as mutations
	if err := s.send(frame{Type: "tree", Seq: s.seq.Add(1), Root: s.node}); err != nil {
		s.logger.Error("initial tree send failed", "error", err)
		return
	}

	// Idle clients answer pings with pongs; each pong pushes the read
	// deadline out, so only a genuinely dead connection times out.
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	stopPing := make(chan struct{})
	defer close(stopPing)
	go s.pingLoop(stopPing)

	s.readLoop(ctx)
	s.logger.Info("session closed")
}

// firstTarget returns the patch target: the document root before the
// first render (so the tree mounts under it), the mounted node after.
func (s *Session) firstTarget() *dom.Node {
	if s.node == nil {
		return s.doc.Root()
	}
	return s.node
}

func (s *Session) markDirty() {
	s.dirty.Store(true)
}

func (s *Session) dispose() {
	if s.render != nil {
		s.render.Dispose()
	}
}

// pingLoop sends heartbeat pings until stop closes or a write fails.
// A failed ping means the connection is gone; the read loop observes the
// same failure and tears the session down.
func (s *Session) pingLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var ev clientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.logger.Error("event decode error", "error", err)
			continue
		}

		s.dispatch(ctx, ev)

		if s.dirty.Swap(false) {
			s.render.Run()
			if err := s.flush(); err != nil {
				s.logger.Error("flush failed", "error", err)
				return
			}
		}
	}
}

// dispatch routes one client event into the live tree under a span.
func (s *Session) dispatch(ctx context.Context, ev clientEvent) {
	_, span := s.tracer.Start(ctx, "live.dispatch", trace.WithAttributes(
		attribute.String("event.type", ev.Event),
		attribute.String("event.node", ev.Node),
	))
	defer span.End()

	node := s.doc.NodeByID(ev.Node)
	if node == nil {
		s.logger.Warn("event for unknown node", "node", ev.Node, "event", ev.Event)
		return
	}
	if !node.Dispatch(dom.Event{Type: ev.Event, Value: ev.Value}) {
		s.logger.Warn("event with no handler", "node", ev.Node, "event", ev.Event)
	}
}

// flush drains the mutation journal and ships it as one frame. An empty
// journal ships nothing.
func (s *Session) flush() error {
	mutations := s.doc.Drain()
	if len(mutations) == 0 {
		return nil
	}
	return s.send(frame{Type: "mutations", Seq: s.seq.Add(1), Mutations: mutations})
}

func (s *Session) send(f frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(f)
}
