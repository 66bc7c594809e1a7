package desktop

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/interaction"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

var (
	// ErrNotFound is returned for unknown desktop ids.
	ErrNotFound = errors.New("desktop not found")
	// ErrHubFull is returned when the hub is at capacity.
	ErrHubFull = errors.New("desktop limit reached")
	// ErrNotOpenable is returned for dock entries that cannot be launched.
	ErrNotOpenable = errors.New("application cannot be opened from the dock")
	// ErrInvalidViewport is returned for non-positive viewport sizes.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrNotGalleryPhoto is returned when a photo is not part of the gallery.
	ErrNotGalleryPhoto = errors.New("photo not in gallery")
)

// Config holds per-desktop settings
type Config struct {
	Window      window.Config
	Terminal    terminal.Config
	MaxDesktops int
	IdleTimeout time.Duration
}

// DefaultConfig returns stock desktop settings.
func DefaultConfig() Config {
	return Config{
		Window:      window.DefaultConfig(),
		Terminal:    terminal.DefaultConfig(),
		MaxDesktops: 1000,
		IdleTimeout: 30 * time.Minute,
	}
}

// Observer receives domain events for metrics
type Observer interface {
	WindowOp(op string)
	TerminalCommand(status string)
}

type nopObserver struct{}

func (nopObserver) WindowOp(string)        {}
func (nopObserver) TerminalCommand(string) {}

// Desktop is one user's desktop
type Desktop struct {
	mu sync.Mutex

	registry *window.Registry
	pointer  *interaction.Manager
	term     *terminal.Engine
	catalog  *content.Catalog
	observer Observer
	logger   *zap.Logger

	version  uint64
	lastUsed time.Time
}

// New creates a desktop over a shared catalog. Observer and logger may be nil.
func New(cfg Config, catalog *content.Catalog, observer Observer, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if catalog == nil {
		catalog = content.Default()
	}

	reg := window.NewRegistry(cfg.Window, logger)
	d := &Desktop{
		registry: reg,
		pointer:  interaction.NewManager(reg),
		term:     terminal.NewEngine(cfg.Terminal, terminal.NewTable(catalog), logger),
		catalog:  catalog,
		observer: observer,
		logger:   logger,
		lastUsed: time.Now(),
	}

	reg.Subscribe(func(ev window.Event) {
		d.version++
		observer.WindowOp(string(ev.Op))
	})
	return d
}

// lock acquires the desktop and marks it used
func (d *Desktop) lock() {
	d.mu.Lock()
	d.lastUsed = time.Now()
}

// Touch marks the desktop used without changing it.
func (d *Desktop) Touch() {
	d.lock()
	d.mu.Unlock()
}

// ClickDock launches a dock application.
func (d *Desktop) ClickDock(app string) error {
	id, err := window.ParseAppID(app)
	if err != nil {
		return err
	}
	entry, ok := d.catalog.DockApp(string(id))
	if !ok || !entry.CanOpen {
		return fmt.Errorf("%w: %s", ErrNotOpenable, id)
	}

	d.lock()
	defer d.mu.Unlock()
	d.registry.Open(id, nil)
	return nil
}

// OpenResult tells the caller what OpenFile did
type OpenResult struct {
	// App is the window that was opened, empty for links.
	App window.AppID `json:"app,omitempty"`
	// Href is set for link files the client should follow itself.
	Href string `json:"href,omitempty"`
}

// OpenFile opens a catalog file in the viewer for its type. Links and
// design files are returned for the client to follow.
func (d *Desktop) OpenFile(path string) (OpenResult, error) {
	node, err := d.catalog.File(path)
	if err != nil {
		return OpenResult{}, err
	}

	var app window.AppID
	switch node.FileType {
	case content.FileText:
		app = window.TxtFile
	case content.FileImage:
		app = window.ImgFile
	case content.FilePDF:
		app = window.Resume
	default:
		return OpenResult{Href: node.Href}, nil
	}

	d.lock()
	defer d.mu.Unlock()
	d.registry.Open(app, node.Payload())
	return OpenResult{App: app}, nil
}

// OpenPhoto shows a gallery photo in the image viewer.
func (d *Desktop) OpenPhoto(imageURL string) error {
	if !slices.Contains(d.catalog.Gallery(), imageURL) {
		return fmt.Errorf("%w: %q", ErrNotGalleryPhoto, imageURL)
	}

	d.lock()
	defer d.mu.Unlock()
	d.registry.Open(window.ImgFile, &window.Payload{Name: "Photo", ImageURL: imageURL})
	return nil
}

// OpenWindow opens a window with an optional payload.
func (d *Desktop) OpenWindow(app string, payload *window.Payload) error {
	return d.withApp(app, func(id window.AppID) { d.registry.Open(id, payload) })
}

func (d *Desktop) CloseWindow(app string) error {
	return d.withApp(app, d.registry.Close)
}

func (d *Desktop) MinimizeWindow(app string) error {
	return d.withApp(app, d.registry.Minimize)
}

func (d *Desktop) MaximizeWindow(app string) error {
	return d.withApp(app, d.registry.Maximize)
}

func (d *Desktop) FocusWindow(app string) error {
	return d.withApp(app, d.registry.Focus)
}

// MoveWindow sets a window position, clamped to the viewport.
func (d *Desktop) MoveWindow(app string, x, y int) error {
	return d.withApp(app, func(id window.AppID) {
		w, ok := d.registry.Window(id)
		if !ok {
			return
		}
		p := d.registry.ClampPosition(window.Position{X: x, Y: y}, w.Size)
		d.registry.Move(id, p.X, p.Y)
	})
}

func (d *Desktop) ResizeWindow(app string, width, height int) error {
	return d.withApp(app, func(id window.AppID) { d.registry.Resize(id, width, height) })
}

func (d *Desktop) withApp(app string, fn func(window.AppID)) error {
	id, err := window.ParseAppID(app)
	if err != nil {
		return err
	}
	d.lock()
	defer d.mu.Unlock()
	fn(id)
	return nil
}

// Pointer feeds a pointer event to a window's controller. Moves are held
// until the next Frame.
func (d *Desktop) Pointer(app string, ev interaction.Event) (bool, error) {
	id, err := window.ParseAppID(app)
	if err != nil {
		return false, err
	}
	d.lock()
	defer d.mu.Unlock()
	return d.pointer.Handle(id, ev), nil
}

// Frame commits coalesced pointer samples.
func (d *Desktop) Frame() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pointer.Pending() {
		return false
	}
	return d.pointer.Frame()
}

// Terminal feeds a keyboard or scroll event to the shell.
func (d *Desktop) Terminal(ev terminal.Event) (terminal.Result, bool) {
	d.lock()
	defer d.mu.Unlock()

	res, ok := d.term.Handle(ev)
	if !ok {
		return res, false
	}
	d.version++
	if res.Status != "" {
		d.observer.TerminalCommand(string(res.Status))
	}
	return res, true
}

// Submit runs one terminal line.
func (d *Desktop) Submit(input string) terminal.Result {
	d.lock()
	defer d.mu.Unlock()

	res := d.term.Submit(input)
	d.version++
	d.observer.TerminalCommand(string(res.Status))
	return res
}

// SetViewport resizes the visible area.
func (d *Desktop) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	d.lock()
	defer d.mu.Unlock()
	d.registry.SetViewport(width, height)
	return nil
}

// TopWindow returns the focused window's state. ok is false when nothing is
// visible.
func (d *Desktop) TopWindow() (window.State, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	top, ok := d.registry.Top()
	if !ok {
		return window.State{}, false
	}
	return d.registry.Window(top)
}

// Window returns one window's state. ok is false if it was never opened.
func (d *Desktop) Window(app string) (window.State, bool, error) {
	id, err := window.ParseAppID(app)
	if err != nil {
		return window.State{}, false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.registry.Window(id)
	return w, ok, nil
}

// Windows returns every window ordered by z-index.
func (d *Desktop) Windows() []window.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Windows()
}

// Version increases on every state change.
func (d *Desktop) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// LastUsed returns the time of the last mutating call.
func (d *Desktop) LastUsed() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUsed
}

// TerminalState is the shell part of a snapshot
type TerminalState struct {
	Prompt       string           `json:"prompt"`
	Input        string           `json:"input"`
	Scrollback   []terminal.Entry `json:"scrollback"`
	History      []string         `json:"history"`
	ScrollOffset int              `json:"scrollOffset"`
}

// Snapshot is a consistent copy of desktop state
type Snapshot struct {
	Version  uint64           `json:"version"`
	Viewport window.Size      `json:"viewport"`
	Windows  []window.State   `json:"windows"`
	Top      window.AppID     `json:"top,omitempty"`
	Terminal TerminalState    `json:"terminal"`
	Catalog  *content.Catalog `json:"-"`
}

// Snapshot copies the current state.
func (d *Desktop) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	top, _ := d.registry.Top()
	return Snapshot{
		Version:  d.version,
		Viewport: d.registry.Viewport(),
		Windows:  d.registry.Windows(),
		Top:      top,
		Terminal: d.terminalState(),
		Catalog:  d.catalog,
	}
}

// TerminalState copies the shell state.
func (d *Desktop) TerminalState() TerminalState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.terminalState()
}

func (d *Desktop) terminalState() TerminalState {
	return TerminalState{
		Prompt:       d.term.Prompt(),
		Input:        d.term.Input(),
		Scrollback:   d.term.Scrollback(),
		History:      d.term.History(),
		ScrollOffset: d.term.ScrollOffset(),
	}
}
