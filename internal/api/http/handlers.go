package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

// Version is reported by the root banner
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	hub     *desktop.Hub
	catalog *content.Catalog
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set. Metrics and logger may be nil.
func NewHandlers(hub *desktop.Hub, catalog *content.Catalog, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		hub:     hub,
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "webdesk",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status": "healthy",
		"hub":    h.hub.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// Dock lists the dock applications
func (h *Handlers) Dock(c *gin.Context) {
	cached(c, gin.H{"apps": h.catalog.Dock()})
}

// ContentFiles lists catalog file paths matching the glob query parameter
func (h *Handlers) ContentFiles(c *gin.Context) {
	pattern := c.Query("glob")
	if err := utils.ValidateGlob(pattern); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	paths, err := h.catalog.Files(pattern)
	if err != nil {
		fail(c, err)
		return
	}
	cached(c, gin.H{"files": paths, "count": len(paths)})
}

// ContentFile returns one catalog node
func (h *Handlers) ContentFile(c *gin.Context) {
	path := c.Param("path")
	if err := utils.ValidateCatalogPath(path); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	node, err := h.catalog.Lookup(path)
	if err != nil {
		fail(c, err)
		return
	}
	cached(c, node)
}

// cached answers with an ETag and honors If-None-Match.
func cached(c *gin.Context, body any) {
	tag, err := utils.ETag(body)
	if err == nil {
		c.Header("ETag", tag)
		if c.GetHeader("If-None-Match") == tag {
			c.Status(http.StatusNotModified)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
