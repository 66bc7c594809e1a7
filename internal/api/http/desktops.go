package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

type viewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type openFileRequest struct {
	Path string `json:"path"`
}

type openPhotoRequest struct {
	ImageURL string `json:"imageUrl"`
}

// desktopFor resolves the :id parameter. It writes the error response itself.
func (h *Handlers) desktopFor(c *gin.Context) (*desktop.Desktop, bool) {
	d, err := h.hub.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return d, true
}

// bind decodes a JSON body into v.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return false
	}
	return true
}

// CreateDesktop makes a new desktop
func (h *Handlers) CreateDesktop(c *gin.Context) {
	id, d, err := h.hub.Create()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":   id,
		"view": desktop.Render(d.Snapshot()),
	})
}

// ListDesktops lists desktop ids
func (h *Handlers) ListDesktops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"desktops": h.hub.List(),
		"stats":    h.hub.Stats(),
	})
}

// GetDesktop renders a desktop view
func (h *Handlers) GetDesktop(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}

	view := desktop.Render(d.Snapshot())
	tag := utils.VersionETag(c.Param("id"), view.Version)
	c.Header("ETag", tag)
	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteDesktop removes a desktop
func (h *Handlers) DeleteDesktop(c *gin.Context) {
	if err := h.hub.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetViewport updates the desktop viewport
func (h *Handlers) SetViewport(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req viewportRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidateDimensions(req.Width, req.Height); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := d.SetViewport(req.Width, req.Height); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, desktop.Render(d.Snapshot()))
}

// ClickDock handles a dock click
func (h *Handlers) ClickDock(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	if err := d.ClickDock(c.Param("app")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, desktop.Render(d.Snapshot()))
}

// OpenFile opens a catalog file. Link files answer with the href to follow.
func (h *Handlers) OpenFile(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req openFileRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidateCatalogPath(req.Path); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	res, err := d.OpenFile(req.Path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"view":   desktop.Render(d.Snapshot()),
	})
}

// OpenPhoto opens a gallery photo in the image viewer
func (h *Handlers) OpenPhoto(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req openPhotoRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidateURL(req.ImageURL, "imageUrl"); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := d.OpenPhoto(req.ImageURL); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, desktop.Render(d.Snapshot()))
}
