package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

type positionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type sizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ListWindows returns every registry entry
func (h *Handlers) ListWindows(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": d.Windows()})
}

// TopWindow returns the focused window, or 404 when none is visible
func (h *Handlers) TopWindow(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	w, ok := d.TopWindow()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no visible window"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// OpenWindow opens a window. The body, when present, is the viewer payload.
func (h *Handlers) OpenWindow(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}

	var payload *window.Payload
	if c.Request.ContentLength != 0 {
		var p window.Payload
		if err := c.ShouldBindJSON(&p); err != nil && !errors.Is(err, io.EOF) {
			fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		} else if err == nil {
			if err := validatePayload(&p); err != nil {
				fail(c, err)
				return
			}
			payload = &p
		}
	}

	if err := d.OpenWindow(c.Param("app"), payload); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, desktop.Render(d.Snapshot()))
}

func validatePayload(p *window.Payload) error {
	if err := utils.ValidateString(p.Name, "name", 0, utils.MaxNameLength, false); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := utils.ValidateString(p.Subtitle, "subtitle", 0, utils.MaxNameLength, false); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := utils.ValidateParagraphs(p.Description); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	for field, v := range map[string]string{"image": p.Image, "imageUrl": p.ImageURL, "href": p.Href} {
		if err := utils.ValidateString(v, field, 0, utils.MaxURLLength, false); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	return nil
}

// windowAction adapts a desktop window operation to a handler.
func (h *Handlers) windowAction(op func(*desktop.Desktop, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := h.desktopFor(c)
		if !ok {
			return
		}
		if err := op(d, c.Param("app")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, desktop.Render(d.Snapshot()))
	}
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowAction((*desktop.Desktop).CloseWindow)(c)
}

// MinimizeWindow minimizes a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowAction((*desktop.Desktop).MinimizeWindow)(c)
}

// MaximizeWindow toggles maximize
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowAction((*desktop.Desktop).MaximizeWindow)(c)
}

// FocusWindow raises a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowAction((*desktop.Desktop).FocusWindow)(c)
}

// MoveWindow sets a window position
func (h *Handlers) MoveWindow(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req positionRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidatePoint(req.X, req.Y); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := d.MoveWindow(c.Param("app"), req.X, req.Y); err != nil {
		fail(c, err)
		return
	}
	w, _, _ := d.Window(c.Param("app"))
	c.JSON(http.StatusOK, w)
}

// ResizeWindow sets a window size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req sizeRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidateDimensions(req.Width, req.Height); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := d.ResizeWindow(c.Param("app"), req.Width, req.Height); err != nil {
		fail(c, err)
		return
	}
	w, _, _ := d.Window(c.Param("app"))
	c.JSON(http.StatusOK, w)
}
