package interaction

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

func setup(t *testing.T) (*window.Registry, *Controller) {
	t.Helper()
	reg := window.NewRegistry(window.DefaultConfig(), nil)
	reg.Open(window.Finder, nil)
	reg.Move(window.Finder, 100, 100)
	reg.Resize(window.Finder, 800, 600)
	return reg, NewController(window.Finder, reg)
}

func geometry(t *testing.T, reg *window.Registry) window.State {
	t.Helper()
	w, ok := reg.Window(window.Finder)
	require.True(t, ok)
	return w
}

func TestDragMovesByPointerDelta(t *testing.T) {
	reg, c := setup(t)

	c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 150, Y: 110}})
	assert.Equal(t, Dragging, c.Mode())

	c.Handle(PointerMove{Point: Point{X: 250, Y: 160}})
	// Nothing committed until the frame
	assert.Equal(t, window.Position{X: 100, Y: 100}, geometry(t, reg).Position)

	assert.True(t, c.Handle(Frame{}))
	assert.Equal(t, window.Position{X: 200, Y: 150}, geometry(t, reg).Position)

	c.Handle(PointerUp{Point: Point{X: 999, Y: 999}})
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, window.Position{X: 200, Y: 150}, geometry(t, reg).Position)
}

func TestDragStartFocuses(t *testing.T) {
	reg, c := setup(t)
	reg.Open(window.Terminal, nil)
	top, _ := reg.Top()
	require.Equal(t, window.Terminal, top)

	c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 120, Y: 105}})
	top, _ = reg.Top()
	assert.Equal(t, window.Finder, top)
}

func TestMovesCoalescedLatestWins(t *testing.T) {
	reg, c := setup(t)
	moves := 0
	reg.Subscribe(func(ev window.Event) {
		if ev.Op == window.OpMove {
			moves++
		}
	})

	c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 100, Y: 100}})
	for i := 1; i <= 10; i++ {
		c.Handle(PointerMove{Point: Point{X: 100 + i*10, Y: 100 + i}})
	}
	c.Handle(Frame{})

	assert.Equal(t, 1, moves)
	assert.Equal(t, window.Position{X: 200, Y: 110}, geometry(t, reg).Position)

	// An empty frame commits nothing
	assert.False(t, c.Handle(Frame{}))
	assert.Equal(t, 1, moves)
}

func TestReleaseCommitsLastSample(t *testing.T) {
	reg, c := setup(t)

	c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 100, Y: 100}})
	c.Handle(PointerMove{Point: Point{X: 130, Y: 140}})
	c.Handle(PointerMove{Point: Point{X: 160, Y: 170}})
	c.Handle(PointerUp{Point: Point{X: 500, Y: 500}})

	assert.Equal(t, Idle, c.Mode())
	assert.False(t, c.Pending())
	assert.Equal(t, window.Position{X: 160, Y: 170}, geometry(t, reg).Position)
}

func TestDragClampedToViewport(t *testing.T) {
	pointers := []Point{
		{X: -5000, Y: -5000},
		{X: 5000, Y: 5000},
		{X: -10, Y: 4000},
		{X: 3000, Y: -1},
		{X: 700, Y: 250},
	}
	for _, p := range pointers {
		reg, c := setup(t)
		c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 110, Y: 105}})
		c.Handle(PointerMove{Point: p})
		c.Handle(PointerUp{Point: p})

		w := geometry(t, reg)
		vp := reg.Viewport()
		assert.GreaterOrEqual(t, w.Position.X, 0, "pointer %+v", p)
		assert.GreaterOrEqual(t, w.Position.Y, 0, "pointer %+v", p)
		assert.LessOrEqual(t, w.Position.X, vp.Width-w.Size.Width, "pointer %+v", p)
		assert.LessOrEqual(t, w.Position.Y, vp.Height-w.Size.Height, "pointer %+v", p)
	}
}

func TestResizeFromHandle(t *testing.T) {
	reg, c := setup(t)

	c.Handle(PointerDown{Target: ResizeHandle, Point: Point{X: 900, Y: 700}})
	assert.Equal(t, Resizing, c.Mode())

	c.Handle(PointerMove{Point: Point{X: 950, Y: 720}})
	c.Handle(Frame{})
	w := geometry(t, reg)
	assert.Equal(t, window.Size{Width: 850, Height: 620}, w.Size)
	assert.Equal(t, window.Position{X: 100, Y: 100}, w.Position)

	// Shrinking below the floor clamps
	c.Handle(PointerMove{Point: Point{X: 0, Y: 0}})
	c.Handle(PointerUp{})
	assert.Equal(t, window.Size{Width: 300, Height: 200}, geometry(t, reg).Size)
	assert.Equal(t, Idle, c.Mode())
}

func TestResizeBoundedByViewport(t *testing.T) {
	reg, c := setup(t)

	c.Handle(PointerDown{Target: ResizeHandle, Point: Point{X: 900, Y: 700}})
	c.Handle(PointerMove{Point: Point{X: 5000, Y: 5000}})
	c.Handle(PointerUp{})

	w := geometry(t, reg)
	vp := reg.Viewport()
	assert.Equal(t, vp.Width-w.Position.X, w.Size.Width)
	assert.Equal(t, vp.Height-w.Position.Y, w.Size.Height)
}

func TestInteractionsDisabledWhileMaximized(t *testing.T) {
	reg, c := setup(t)
	reg.Maximize(window.Finder)

	c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 10, Y: 10}})
	assert.Equal(t, Idle, c.Mode())
	c.Handle(PointerMove{Point: Point{X: 300, Y: 300}})
	c.Handle(Frame{})

	assert.False(t, c.Handle(PointerDown{Target: ResizeHandle, Point: Point{X: 10, Y: 10}}))
	assert.Equal(t, Idle, c.Mode())

	w := geometry(t, reg)
	assert.Equal(t, window.Position{}, w.Position)
	assert.Equal(t, reg.Viewport(), w.Size)
}

func TestMoveWhileIdleIgnored(t *testing.T) {
	reg, c := setup(t)
	c.Handle(PointerMove{Point: Point{X: 400, Y: 400}})
	assert.False(t, c.Pending())
	c.Handle(Frame{})
	assert.Equal(t, window.Position{X: 100, Y: 100}, geometry(t, reg).Position)
}

func TestPointerDownOnClosedWindowIgnored(t *testing.T) {
	reg, c := setup(t)
	reg.Close(window.Finder)
	assert.False(t, c.Handle(PointerDown{Target: TitleBar, Point: Point{X: 120, Y: 120}}))
	assert.Equal(t, Idle, c.Mode())
}

func TestBodyClickFocusesWithoutDragging(t *testing.T) {
	reg, c := setup(t)
	reg.Open(window.Photos, nil)

	assert.True(t, c.Handle(PointerDown{Target: Body, Point: Point{X: 300, Y: 300}}))
	assert.Equal(t, Idle, c.Mode())
	top, _ := reg.Top()
	assert.Equal(t, window.Finder, top)
}

func TestManagerFrameFlushesAll(t *testing.T) {
	reg := window.NewRegistry(window.DefaultConfig(), nil)
	reg.Open(window.Finder, nil)
	reg.Open(window.Terminal, nil)
	m := NewManager(reg)

	finder, _ := reg.Window(window.Finder)
	m.Handle(window.Finder, PointerDown{Target: TitleBar, Point: Point{X: finder.Position.X, Y: finder.Position.Y}})
	m.Handle(window.Finder, PointerMove{Point: Point{X: 0, Y: 0}})
	assert.True(t, m.Pending())

	id, mode := m.Active()
	assert.Equal(t, window.Finder, id)
	assert.Equal(t, Dragging, mode)

	assert.True(t, m.Frame())
	assert.False(t, m.Pending())
	finder, _ = reg.Window(window.Finder)
	assert.Equal(t, window.Position{}, finder.Position)

	assert.False(t, m.Handle(window.AppID("bogus"), Frame{}))
}

func TestRunFramesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	done := make(chan struct{})

	go func() {
		RunFrames(ctx, time.Millisecond, func() { ticks.Add(1) })
		close(done)
	}()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunFrames did not return after cancel")
	}
}

func TestClampPositionOversizedWindow(t *testing.T) {
	pos := ClampPosition(window.Position{X: 50, Y: 50}, window.Size{Width: 2000, Height: 1000}, window.Size{Width: 1440, Height: 900})
	assert.Equal(t, window.Position{}, pos)
}
