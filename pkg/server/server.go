package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toastify-dev/toastify/pkg/middleware"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// Server is the HTTP/WebSocket server.
type Server struct {
	config   Config
	sessions *Manager
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger

	metrics    *middleware.Metrics
	gatherer   prometheus.Gatherer
	middleware []middleware.Middleware

	mu       sync.RWMutex
	icons    toast.Icons
	defaults []toast.Option

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records metrics into m and serves g at the metrics path.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithMiddleware appends message middleware. The server always logs
// messages first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Server) { s.middleware = append(s.middleware, mws...) }
}

// WithIcons sets the icon set for new toasts.
func WithIcons(icons toast.Icons) Option {
	return func(s *Server) { s.icons = icons }
}

// WithDefaults sets default options for new toasts.
func WithDefaults(opts ...toast.Option) Option {
	return func(s *Server) { s.defaults = opts }
}

// New creates a Server.
func New(config Config, opts ...Option) *Server {
	config.applyDefaults()
	s := &Server{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")

	s.sessions = NewManager(config.MaxSessions, s.logger)
	if s.metrics != nil {
		s.sessions.SetOnSessionCreate(func(*Session) { s.metrics.SessionOpened() })
		s.sessions.SetOnSessionClose(func(*Session) { s.metrics.SessionClosed() })
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.HandleWebSocket)
	r.Handle("/static/*", staticHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))
		r.Post("/toasts", s.handleBroadcast)
		r.Get("/sessions", s.handleStats)
	})

	if s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandleWebSocket upgrades the request and starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	session, err := s.sessions.Create(s, conn)
	if err != nil {
		s.logger.Warn("session rejected", "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session limit reached"))
		conn.Close()
		return
	}
	session.Start()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	if len(s.config.AllowedOrigins) > 0 {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// SetIcons replaces the icon set used by toasts created from now on.
func (s *Server) SetIcons(icons toast.Icons) {
	s.mu.Lock()
	s.icons = icons
	s.mu.Unlock()
}

// SetDefaults replaces the default options used by toasts created from now on.
func (s *Server) SetDefaults(opts []toast.Option) {
	s.mu.Lock()
	s.defaults = opts
	s.mu.Unlock()
}

func (s *Server) widgetDefaults() (toast.Icons, []toast.Option) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.icons, s.defaults
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager { return s.sessions }

// Config returns the server configuration.
func (s *Server) Config() Config { return s.config }

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
