package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

// ErrBadRequest marks request validation failures
var ErrBadRequest = errors.New("bad request")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, window.ErrInvalidIdentifier),
		errors.Is(err, desktop.ErrInvalidViewport),
		errors.Is(err, content.ErrBadPattern),
		errors.Is(err, content.ErrNotFile):
		return http.StatusBadRequest
	case errors.Is(err, desktop.ErrNotFound),
		errors.Is(err, content.ErrNotFound),
		errors.Is(err, desktop.ErrNotGalleryPhoto):
		return http.StatusNotFound
	case errors.Is(err, desktop.ErrNotOpenable):
		return http.StatusConflict
	case errors.Is(err, desktop.ErrHubFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes an error response and records the error on the context.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
