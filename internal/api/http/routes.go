package http

import "github.com/gin-gonic/gin"

// Register mounts every desktop route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Static content
	r.GET("/dock", h.Dock)
	r.GET("/content/files", h.ContentFiles)
	r.GET("/content/nodes/*path", h.ContentFile)

	// Desktop lifecycle
	r.POST("/desktops", h.CreateDesktop)
	r.GET("/desktops", h.ListDesktops)

	d := r.Group("/desktops/:id")
	d.GET("", h.GetDesktop)
	d.DELETE("", h.DeleteDesktop)
	d.PUT("/viewport", h.SetViewport)
	d.POST("/dock/:app", h.ClickDock)
	d.POST("/files/open", h.OpenFile)
	d.POST("/photos/open", h.OpenPhoto)

	// Windows
	d.GET("/windows", h.ListWindows)
	d.GET("/windows/top", h.TopWindow)
	d.POST("/windows/:app/open", h.OpenWindow)
	d.POST("/windows/:app/close", h.CloseWindow)
	d.POST("/windows/:app/minimize", h.MinimizeWindow)
	d.POST("/windows/:app/maximize", h.MaximizeWindow)
	d.POST("/windows/:app/focus", h.FocusWindow)
	d.PUT("/windows/:app/position", h.MoveWindow)
	d.PUT("/windows/:app/size", h.ResizeWindow)

	// Terminal
	d.GET("/terminal", h.Terminal)
	d.POST("/terminal/submit", h.SubmitCommand)
	d.POST("/terminal/up", h.HistoryUp)
	d.POST("/terminal/down", h.HistoryDown)
	d.POST("/terminal/scroll", h.ScrollTerminal)
}
