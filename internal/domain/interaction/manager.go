package interaction

import (
	"context"
	"time"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

// DefaultFrameInterval approximates one animation frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Manager owns one controller per window
type Manager struct {
	registry    Registry
	controllers map[window.AppID]*Controller
}

// NewManager creates a manager driving the given registry.
func NewManager(registry Registry) *Manager {
	return &Manager{
		registry:    registry,
		controllers: make(map[window.AppID]*Controller),
	}
}

// Controller returns the controller for id, creating it on first use.
func (m *Manager) Controller(id window.AppID) *Controller {
	c, ok := m.controllers[id]
	if !ok {
		c = NewController(id, m.registry)
		m.controllers[id] = c
	}
	return c
}

// Handle routes an event to the window's controller.
func (m *Manager) Handle(id window.AppID, ev Event) bool {
	if !id.Valid() {
		return false
	}
	return m.Controller(id).Handle(ev)
}

// Frame commits pending samples on every controller.
func (m *Manager) Frame() bool {
	changed := false
	for _, c := range m.controllers {
		if c.Pending() && c.Handle(Frame{}) {
			changed = true
		}
	}
	return changed
}

// Pending reports whether any controller holds an uncommitted sample.
func (m *Manager) Pending() bool {
	for _, c := range m.controllers {
		if c.Pending() {
			return true
		}
	}
	return false
}

// Active returns the window currently being dragged or resized.
func (m *Manager) Active() (window.AppID, Mode) {
	for id, c := range m.controllers {
		if c.Mode() != Idle {
			return id, c.Mode()
		}
	}
	return "", Idle
}

// RunFrames calls tick once per interval until ctx is done.
func RunFrames(ctx context.Context, interval time.Duration, tick func()) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
