package tracing

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/backend/internal/shared/id"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// ContextKey is the gin context key holding the request id
const ContextKey = "request_id"

// HTTPMiddleware assigns a request id, exposes it to handlers and logs the
// finished request. A well-formed incoming X-Request-ID is kept.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, err := id.ParseRequestID(c.GetHeader(HeaderRequestID))
		if err != nil {
			rid = id.NewRequestID()
		}

		c.Set(ContextKey, rid.String())
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), rid))
		c.Header(HeaderRequestID, rid.String())

		span := &Span{
			RequestID: rid,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			ClientIP:  c.ClientIP(),
			StartTime: time.Now(),
		}

		c.Next()

		span.Name = c.FullPath()
		span.Duration = time.Since(span.StartTime)
		span.Status = c.Writer.Status()
		span.Bytes = c.Writer.Size()
		if desk := c.Param("id"); desk != "" {
			span.SetTag("desktop_id", desk)
		}
		if len(c.Errors) > 0 {
			span.Err = c.Errors.Last()
		}

		tracer.Submit(span)
	}
}
