// Package interaction translates pointer events into window geometry changes.
//
// Each window gets a Controller with three states: Idle, Dragging and
// Resizing. Pointer moves are coalesced latest-wins and committed at most
// once per Frame event, so a burst of samples inside one frame costs a single
// registry mutation. Release commits the pending sample before going idle.
package interaction

import (
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

// Mode is the controller state
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Target is the part of the window a pointer-down landed on
type Target string

const (
	TitleBar     Target = "titlebar"
	ResizeHandle Target = "resize"
	Body         Target = "body"
)

// Point is a pointer position in viewport pixels
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Event is fed into Controller.Handle
type Event interface {
	isEvent()
}

// PointerDown starts an interaction when it hits the title bar or resize handle.
type PointerDown struct {
	Target Target
	Point  Point
}

// PointerMove carries one pointer sample
type PointerMove struct {
	Point Point
}

// PointerUp ends the current interaction
type PointerUp struct {
	Point Point
}

// Frame marks an animation frame boundary
type Frame struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Frame) isEvent()       {}

// Registry is the subset of the window registry a controller drives
type Registry interface {
	Window(id window.AppID) (window.State, bool)
	Viewport() window.Size
	Focus(id window.AppID)
	Move(id window.AppID, x, y int)
	Resize(id window.AppID, width, height int)
	ClampSize(s window.Size) window.Size
}

// Controller is the per-window drag/resize state machine
type Controller struct {
	id       window.AppID
	registry Registry
	mode     Mode

	// Dragging: pointer offset from the window origin.
	offset Point
	// Resizing: pointer and size at pointer-down.
	anchor    Point
	startSize window.Size

	pending *Point
}

// NewController creates an idle controller for one window.
func NewController(id window.AppID, registry Registry) *Controller {
	return &Controller{id: id, registry: registry}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Pending reports whether a move sample awaits the next frame.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// Handle applies one event and reports whether the registry was mutated.
func (c *Controller) Handle(ev Event) bool {
	switch e := ev.(type) {
	case PointerDown:
		return c.down(e)
	case PointerMove:
		if c.mode == Idle {
			return false
		}
		p := e.Point
		c.pending = &p
		return false
	case Frame:
		return c.flush()
	case PointerUp:
		changed := c.flush()
		c.mode = Idle
		c.pending = nil
		return changed
	}
	return false
}

func (c *Controller) down(e PointerDown) bool {
	if c.mode != Idle {
		return false
	}
	w, ok := c.registry.Window(c.id)
	if !ok || !w.Visible() {
		return false
	}

	switch e.Target {
	case TitleBar:
		if w.IsMaximized {
			c.registry.Focus(c.id)
			return true
		}
		c.offset = Point{X: e.Point.X - w.Position.X, Y: e.Point.Y - w.Position.Y}
		c.mode = Dragging
	case ResizeHandle:
		// No handle on maximized windows
		if w.IsMaximized {
			return false
		}
		c.anchor = e.Point
		c.startSize = w.Size
		c.mode = Resizing
	}

	c.registry.Focus(c.id)
	return true
}

// flush commits the latest pending sample, if any
func (c *Controller) flush() bool {
	if c.pending == nil {
		return false
	}
	p := *c.pending
	c.pending = nil

	w, ok := c.registry.Window(c.id)
	if !ok || w.IsMaximized {
		return false
	}

	switch c.mode {
	case Dragging:
		pos := ClampPosition(
			window.Position{X: p.X - c.offset.X, Y: p.Y - c.offset.Y},
			w.Size,
			c.registry.Viewport(),
		)
		if pos == w.Position {
			return false
		}
		c.registry.Move(c.id, pos.X, pos.Y)
		return true
	case Resizing:
		size := c.resizeTarget(p, w)
		if size == w.Size {
			return false
		}
		c.registry.Resize(c.id, size.Width, size.Height)
		return true
	}
	return false
}

// resizeTarget grows from the bottom-right corner, bounded by the viewport
// edge and the registry's minimum size.
func (c *Controller) resizeTarget(p Point, w window.State) window.Size {
	vp := c.registry.Viewport()
	size := window.Size{
		Width:  c.startSize.Width + (p.X - c.anchor.X),
		Height: c.startSize.Height + (p.Y - c.anchor.Y),
	}
	size.Width = min(size.Width, vp.Width-w.Position.X)
	size.Height = min(size.Height, vp.Height-w.Position.Y)
	return c.registry.ClampSize(size)
}

// ClampPosition bounds a window origin to [0, vw-width] x [0, vh-height].
// Windows larger than the viewport are pinned to the origin.
func ClampPosition(p window.Position, size, viewport window.Size) window.Position {
	return window.Position{
		X: max(0, min(p.X, viewport.Width-size.Width)),
		Y: max(0, min(p.Y, viewport.Height-size.Height)),
	}
}
