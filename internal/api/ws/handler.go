package ws

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
)

// Config holds stream settings
type Config struct {
	FrameInterval   time.Duration
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	MaxMessageBytes int64
	// AllowedOrigins restricts browser origins; empty or "*" allows all.
	AllowedOrigins []string
}

// DefaultConfig returns 60Hz frames with a 30s keepalive.
func DefaultConfig() Config {
	return Config{
		FrameInterval:   16 * time.Millisecond,
		WriteTimeout:    5 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageBytes: 16 * 1024,
	}
}

// Recorder receives connection metrics
type Recorder interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

type nopRecorder struct{}

func (nopRecorder) IncWSConnections()              {}
func (nopRecorder) DecWSConnections()              {}
func (nopRecorder) RecordWSMessage(string, string) {}

// Handler upgrades desktop streams
type Handler struct {
	hub      *desktop.Hub
	cfg      Config
	recorder Recorder
	logger   *zap.Logger
	upgrader websocket.Upgrader

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHandler creates a stream handler. Recorder and logger may be nil.
func NewHandler(hub *desktop.Hub, cfg Config, recorder Recorder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	def := DefaultConfig()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = def.MaxMessageBytes
	}

	base, cancel := context.WithCancel(context.Background())
	h := &Handler{
		hub:      hub,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
		base:     base,
		cancel:   cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origins := h.cfg.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(origins, origin)
}

// HandleConnection upgrades GET /desktops/:id/stream
func (h *Handler) HandleConnection(c *gin.Context) {
	deskID := c.Param("id")
	d, err := h.hub.Get(deskID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	logger := h.logger.With(zap.String("conn_id", connID), zap.String("desktop_id", deskID))

	h.wg.Add(1)
	defer h.wg.Done()
	h.recorder.IncWSConnections()
	defer h.recorder.DecWSConnections()

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()
	stop := context.AfterFunc(c.Request.Context(), cancel)
	defer stop()

	logger.Info("stream opened")
	s := &session{
		deskID:   deskID,
		desk:     d,
		hub:      h.hub,
		conn:     conn,
		cfg:      h.cfg,
		recorder: h.recorder,
		logger:   logger,
		out:      make(chan ServerMessage, 32),
	}
	s.run(ctx)
	logger.Info("stream closed")
}

// Shutdown closes every open stream and waits for them to finish.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.cancel()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
