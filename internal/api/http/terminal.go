package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

type submitRequest struct {
	Input string `json:"input"`
}

type scrollRequest struct {
	Lines int `json:"lines"`
}

// Terminal returns the shell state
func (h *Handlers) Terminal(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d.TerminalState())
}

// SubmitCommand runs one terminal line
func (h *Handlers) SubmitCommand(c *gin.Context) {
	d, ok := h.desktopFor(c)
	if !ok {
		return
	}
	var req submitRequest
	if !bind(c, &req) {
		return
	}
	if err := utils.ValidateInput(req.Input); err != nil {
		fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	res := d.Submit(req.Input)
	c.JSON(http.StatusOK, gin.H{
		"result":   res,
		"terminal": d.TerminalState(),
	})
}

// terminalKey feeds a key event and returns the shell state.
func (h *Handlers) terminalKey(ev terminal.Event) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := h.desktopFor(c)
		if !ok {
			return
		}
		d.Terminal(ev)
		c.JSON(http.StatusOK, d.TerminalState())
	}
}

// HistoryUp recalls the previous command
func (h *Handlers) HistoryUp(c *gin.Context) {
	h.terminalKey(terminal.KeyArrowUp{})(c)
}

// HistoryDown recalls the next command
func (h *Handlers) HistoryDown(c *gin.Context) {
	h.terminalKey(terminal.KeyArrowDown{})(c)
}

// ScrollTerminal moves the scrollback view
func (h *Handlers) ScrollTerminal(c *gin.Context) {
	var req scrollRequest
	if !bind(c, &req) {
		return
	}
	h.terminalKey(terminal.ScrollBy{Lines: req.Lines})(c)
}
