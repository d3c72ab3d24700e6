// Package live hosts Reago components over HTTP. It serves a thin
// browser client, upgrades it to a WebSocket, and streams the mutation
// journal of each session's Document so the browser mirrors the live
// tree. Events flow back over the same socket and dispatch into the
// tree, where handlers update reactive state and trigger a re-render.
package live

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/reago-dev/reago/pkg/vdom"
)

// Config configures a live server.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// Root builds the root component for each new session.
	Root func() vdom.Component

	// Logger receives structured server and session logs.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// CheckOrigin overrides the WebSocket origin check. By default all
	// origins are accepted, which suits local development only.
	CheckOrigin func(*http.Request) bool
}

// Server serves the live client page, the WebSocket endpoint, and
// Prometheus metrics.
type Server struct {
	config   Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	router   chi.Router
	tracer   trace.Tracer

	httpServer *http.Server
}

// New creates a live server for the given configuration.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	s := &Server{
		config: config,
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		tracer: otel.Tracer("reago/live"),
	}

	r := chi.NewRouter()
	r.Get("/", s.handlePage)
	r.Get("/live", s.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("live server listening", "addr", s.config.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(clientPage))
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.config.Root == nil {
		http.Error(w, "no root component configured", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.config.Root(), s.logger, s.tracer)
	sess.Run(r.Context())
}
