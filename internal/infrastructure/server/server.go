package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/webdesk/backend/internal/api/http"
	"github.com/GriffinCanCode/webdesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/backend/internal/api/ws"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	config  *config.Config
	logger  *logging.Logger
	router  *gin.Engine
	handler http.Handler

	hub     *desktop.Hub
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	limiter *middleware.Limiter
	stream  *ws.Handler

	httpServer *http.Server
}

// New builds the server from configuration.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	logger.Info("Initializing webdesk server",
		zap.String("addr", cfg.Addr()),
		zap.String("content_dir", cfg.Content.Dir),
	)

	catalog, err := content.Load(content.Options{Dir: cfg.Content.Dir}, logger.Component("content"))
	if err != nil {
		return nil, fmt.Errorf("failed to load content catalog: %w", err)
	}

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logger.Component("http"), 1000)
	hub := desktop.NewHub(DesktopConfig(cfg), catalog, metrics, logger.Component("hub"))

	stream := ws.NewHandler(hub, ws.Config{
		FrameInterval:   cfg.Stream.FrameInterval,
		WriteTimeout:    cfg.Stream.WriteTimeout,
		PingInterval:    cfg.Stream.PingInterval,
		MaxMessageBytes: cfg.Stream.MaxMessageBytes,
		AllowedOrigins:  cfg.CORS.AllowOrigins,
	}, metrics, logger.Component("stream"))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.AllowOrigins)))

	var limiter *middleware.Limiter
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		limiter = middleware.NewLimiter(rl)
		router.Use(limiter.Middleware())
	}
	router.Use(middleware.BodyLimit(utils.MaxJSONSize))

	handlers := api.NewHandlers(hub, catalog, metrics, logger.Component("api"))
	handlers.Register(router)
	router.GET("/desktops/:id/stream", stream.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	var handler http.Handler = router
	if cfg.Server.Compression {
		handler, err = compress(router)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Server initialized successfully")

	return &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		handler: handler,
		hub:     hub,
		metrics: metrics,
		tracer:  tracer,
		limiter: limiter,
		stream:  stream,
	}, nil
}

// DesktopConfig maps service configuration onto the desktop domain.
func DesktopConfig(cfg *config.Config) desktop.Config {
	win := window.DefaultConfig()
	win.ViewportWidth = cfg.Desktop.ViewportWidth
	win.ViewportHeight = cfg.Desktop.ViewportHeight
	win.DefaultWidth = cfg.Desktop.WindowWidth
	win.DefaultHeight = cfg.Desktop.WindowHeight
	win.MinWidth = cfg.Desktop.MinWidth
	win.MinHeight = cfg.Desktop.MinHeight
	win.BaseZIndex = cfg.Desktop.BaseZIndex

	return desktop.Config{
		Window: win,
		Terminal: terminal.Config{
			Prompt:         cfg.Terminal.Prompt,
			Welcome:        cfg.Terminal.Welcome,
			MaxInputLength: cfg.Terminal.MaxInputLength,
		},
		MaxDesktops: cfg.Desktop.MaxDesktops,
		IdleTimeout: cfg.Desktop.IdleTimeout,
	}
}

// compress gzips responses except WebSocket upgrades, which need the raw
// connection.
func compress(next http.Handler) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(1024))
	if err != nil {
		return nil, fmt.Errorf("failed to build gzip wrapper: %w", err)
	}
	gz := wrap(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	}), nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub exposes the desktop hub.
func (s *Server) Hub() *desktop.Hub {
	return s.hub
}

// Run serves on the configured address until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	bg, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	go s.hub.RunSweeper(bg, s.config.Desktop.SweepInterval)
	if s.limiter != nil {
		go s.limiter.RunEviction(bg, time.Minute)
	}

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes streams, drains HTTP requests and flushes request logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	var errs []error
	if err := s.stream.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("streams: %w", err))
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}
	s.tracer.Close()
	return errors.Join(errs...)
}
