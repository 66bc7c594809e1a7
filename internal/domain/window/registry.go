package window

import (
	"sort"

	"go.uber.org/zap"
)

// Config holds registry geometry defaults
type Config struct {
	ViewportWidth  int
	ViewportHeight int
	DefaultWidth   int
	DefaultHeight  int
	MinWidth       int
	MinHeight      int
	BaseZIndex     int
	CascadeOffset  int
}

// DefaultConfig returns the stock desktop geometry.
func DefaultConfig() Config {
	return Config{
		ViewportWidth:  1440,
		ViewportHeight: 900,
		DefaultWidth:   800,
		DefaultHeight:  600,
		MinWidth:       300,
		MinHeight:      200,
		BaseZIndex:     1000,
		CascadeOffset:  30,
	}
}

// Registry maps application ids to window state
type Registry struct {
	cfg       Config
	windows   map[AppID]*State
	nextZ     int
	created   int
	viewport  Size
	listeners []Listener
	logger    *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger discards diagnostics.
func NewRegistry(cfg Config, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		cfg.ViewportWidth, cfg.ViewportHeight = def.ViewportWidth, def.ViewportHeight
	}
	if cfg.DefaultWidth <= 0 || cfg.DefaultHeight <= 0 {
		cfg.DefaultWidth, cfg.DefaultHeight = def.DefaultWidth, def.DefaultHeight
	}
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = def.MinWidth
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = def.MinHeight
	}
	return &Registry{
		cfg:      cfg,
		windows:  make(map[AppID]*State),
		nextZ:    cfg.BaseZIndex + 1,
		viewport: Size{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
		logger:   logger,
	}
}

// Subscribe registers a listener for change events.
func (r *Registry) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

func (r *Registry) publish(op Op, w *State) {
	if len(r.listeners) == 0 {
		return
	}
	ev := Event{Op: op}
	if w != nil {
		ev.ID = w.ID
		ev.State = w.clone()
	}
	for _, l := range r.listeners {
		l(ev)
	}
}

// valid logs and rejects ids outside the application set
func (r *Registry) valid(op Op, id AppID) bool {
	if id.Valid() {
		return true
	}
	r.logger.Warn("ignoring window operation",
		zap.String("op", string(op)),
		zap.String("app_id", string(id)),
		zap.Error(ErrInvalidIdentifier),
	)
	return false
}

func (r *Registry) lookup(op Op, id AppID) (*State, bool) {
	if !r.valid(op, id) {
		return nil, false
	}
	w, ok := r.windows[id]
	return w, ok
}

// Open opens (or re-focuses) the window for id. A non-nil payload replaces
// the current one; a nil payload keeps whatever the window already holds.
func (r *Registry) Open(id AppID, payload *Payload) {
	if !r.valid(OpOpen, id) {
		return
	}

	w, ok := r.windows[id]
	if !ok {
		w = r.newState(id)
		r.windows[id] = w
	}

	if payload != nil {
		w.Payload = payload.clone()
	}
	w.IsOpen = true
	w.IsMinimized = false
	r.focus(w)

	r.publish(OpOpen, w)
}

func (r *Registry) newState(id AppID) *State {
	size := Size{Width: r.cfg.DefaultWidth, Height: r.cfg.DefaultHeight}
	if size.Width > r.viewport.Width {
		size.Width = max(r.viewport.Width, r.cfg.MinWidth)
	}
	if size.Height > r.viewport.Height {
		size.Height = max(r.viewport.Height, r.cfg.MinHeight)
	}

	// Centered, then cascaded so consecutive windows do not stack exactly
	step := r.cfg.CascadeOffset * (r.created % 5)
	r.created++
	pos := r.clampPosition(Position{
		X: (r.viewport.Width-size.Width)/2 + step,
		Y: (r.viewport.Height-size.Height)/2 + step,
	}, size)

	return &State{
		ID:       id,
		ZIndex:   r.cfg.BaseZIndex,
		Position: pos,
		Size:     size,
	}
}

// Close hides the window and drops its payload. Geometry is kept for reopen.
func (r *Registry) Close(id AppID) {
	w, ok := r.lookup(OpClose, id)
	if !ok || !w.IsOpen {
		return
	}

	w.IsOpen = false
	w.IsMinimized = false
	w.Payload = nil
	w.ZIndex = r.cfg.BaseZIndex

	r.publish(OpClose, w)
}

// Minimize keeps the window open but removes it from topmost candidacy.
func (r *Registry) Minimize(id AppID) {
	w, ok := r.lookup(OpMinimize, id)
	if !ok || w.IsMinimized {
		return
	}

	w.IsMinimized = true
	r.publish(OpMinimize, w)
}

// Maximize toggles between full-viewport and the saved geometry.
// It is ignored while the window is minimized.
func (r *Registry) Maximize(id AppID) {
	w, ok := r.lookup(OpMaximize, id)
	if !ok || w.IsMinimized {
		return
	}

	if w.IsMaximized {
		if w.PreMaximize != nil {
			w.Position = w.PreMaximize.Position
			w.Size = w.PreMaximize.Size
		}
		w.PreMaximize = nil
		w.IsMaximized = false
		r.publish(OpRestore, w)
		return
	}

	saved := w.Geometry()
	w.PreMaximize = &saved
	w.Position = Position{}
	w.Size = r.viewport
	w.IsMaximized = true
	r.publish(OpMaximize, w)
}

// Focus raises the window above every other one and restores it if minimized.
func (r *Registry) Focus(id AppID) {
	w, ok := r.lookup(OpFocus, id)
	if !ok {
		return
	}
	r.focus(w)
	r.publish(OpFocus, w)
}

func (r *Registry) focus(w *State) {
	w.ZIndex = r.nextZ
	r.nextZ++
	w.IsMinimized = false
}

// Move sets the window position. Rejected while maximized.
func (r *Registry) Move(id AppID, x, y int) {
	w, ok := r.lookup(OpMove, id)
	if !ok || w.IsMaximized {
		return
	}
	if w.Position.X == x && w.Position.Y == y {
		return
	}

	w.Position = Position{X: x, Y: y}
	r.publish(OpMove, w)
}

// Resize sets the window size, clamped to the minimum floor. Rejected while maximized.
func (r *Registry) Resize(id AppID, width, height int) {
	w, ok := r.lookup(OpResize, id)
	if !ok || w.IsMaximized {
		return
	}

	size := r.ClampSize(Size{Width: width, Height: height})
	if w.Size == size {
		return
	}

	w.Size = size
	r.publish(OpResize, w)
}

// ClampSize applies the minimum size floor.
func (r *Registry) ClampSize(s Size) Size {
	return Size{
		Width:  max(s.Width, r.cfg.MinWidth),
		Height: max(s.Height, r.cfg.MinHeight),
	}
}

// ClampPosition keeps a window of the given size inside the viewport.
func (r *Registry) ClampPosition(p Position, size Size) Position {
	return r.clampPosition(p, size)
}

func (r *Registry) clampPosition(p Position, size Size) Position {
	return Position{
		X: clamp(p.X, 0, r.viewport.Width-size.Width),
		Y: clamp(p.Y, 0, r.viewport.Height-size.Height),
	}
}

// clamp bounds v to [lo, hi]; when hi < lo the lower bound wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// SetViewport updates the visible area and refits maximized windows.
func (r *Registry) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.viewport = Size{Width: width, Height: height}
	for _, w := range r.windows {
		if w.IsMaximized {
			w.Size = r.viewport
		}
	}
	r.publish(OpViewport, nil)
}

// Viewport returns the current visible area.
func (r *Registry) Viewport() Size {
	return r.viewport
}

// MinSize returns the resize floor.
func (r *Registry) MinSize() Size {
	return Size{Width: r.cfg.MinWidth, Height: r.cfg.MinHeight}
}

// Top returns the open, non-minimized window with the greatest z-index.
func (r *Registry) Top() (AppID, bool) {
	var (
		top   AppID
		bestZ int
		found bool
	)
	for id, w := range r.windows {
		if !w.Visible() {
			continue
		}
		if !found || w.ZIndex > bestZ {
			top, bestZ, found = id, w.ZIndex, true
		}
	}
	return top, found
}

// Window returns a copy of the state for id.
func (r *Registry) Window(id AppID) (State, bool) {
	w, ok := r.windows[id]
	if !ok {
		return State{}, false
	}
	return w.clone(), true
}

// Windows returns copies of every known window ordered by z-index, lowest first.
func (r *Registry) Windows() []State {
	out := make([]State, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// OpenCount returns the number of open windows.
func (r *Registry) OpenCount() int {
	n := 0
	for _, w := range r.windows {
		if w.IsOpen {
			n++
		}
	}
	return n
}
