package tracing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/shared/id"
)

// Span records one handled request
type Span struct {
	RequestID id.RequestID
	Name      string
	Method    string
	Path      string
	ClientIP  string
	Status    int
	Bytes     int
	StartTime time.Time
	Duration  time.Duration
	Tags      map[string]string
	Err       error
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

// Tracer logs finished spans off the request path
type Tracer struct {
	logger *zap.Logger
	spans  chan *Span

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a tracer with a buffered collector.
func New(logger *zap.Logger, buffer int) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 1000
	}
	t := &Tracer{
		logger: logger,
		spans:  make(chan *Span, buffer),
		done:   make(chan struct{}),
	}

	go t.collectSpans()

	return t
}

func (t *Tracer) collectSpans() {
	defer close(t.done)
	for span := range t.spans {
		t.processSpan(span)
	}
}

func (t *Tracer) processSpan(span *Span) {
	fields := []zap.Field{
		zap.String("request_id", span.RequestID.String()),
		zap.String("method", span.Method),
		zap.String("route", span.Name),
		zap.String("path", span.Path),
		zap.Int("status", span.Status),
		zap.Int("bytes", span.Bytes),
		zap.Duration("duration", span.Duration),
		zap.String("client_ip", span.ClientIP),
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	switch {
	case span.Err != nil:
		fields = append(fields, zap.Error(span.Err))
		t.logger.Error("request failed", fields...)
	case span.Status >= 500:
		t.logger.Error("request completed", fields...)
	case span.Status >= 400:
		t.logger.Warn("request completed", fields...)
	default:
		t.logger.Info("request completed", fields...)
	}
}

// Submit queues a span. Spans are dropped when the buffer is full.
func (t *Tracer) Submit(span *Span) {
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("request_id", span.RequestID.String()),
		)
	}
}

// Close drains queued spans and stops the collector. Submit must not be
// called after Close.
func (t *Tracer) Close() {
	t.closeOnce.Do(func() {
		close(t.spans)
	})
	<-t.done
}

type contextKey struct{}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, rid id.RequestID) context.Context {
	return context.WithValue(ctx, contextKey{}, rid)
}

// RequestIDFrom retrieves the request id from ctx.
func RequestIDFrom(ctx context.Context) id.RequestID {
	if rid, ok := ctx.Value(contextKey{}).(id.RequestID); ok {
		return rid
	}
	return ""
}
