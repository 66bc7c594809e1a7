package desktop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHubLifecycle(t *testing.T) {
	obs := newCountingObserver()
	h := NewHub(DefaultConfig(), nil, obs, nil)

	id1, d1, err := h.Create()
	require.NoError(t, err)
	id2, _, err := h.Create()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, obs.active)

	got, err := h.Get(id1.String())
	require.NoError(t, err)
	assert.Same(t, d1, got)

	assert.Equal(t, []string{id1.String(), id2.String()}, idStrings(h))

	require.NoError(t, h.Delete(id1.String()))
	_, err = h.Get(id1.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, h.Delete(id1.String()), ErrNotFound)
	assert.Equal(t, 1, obs.active)
	assert.Equal(t, Stats{Desktops: 1, Max: 1000}, h.Stats())
}

func idStrings(h *Hub) []string {
	var out []string
	for _, id := range h.List() {
		out = append(out, id.String())
	}
	return out
}

func TestHubGetMalformed(t *testing.T) {
	h := NewHub(DefaultConfig(), nil, nil, nil)
	_, err := h.Get("not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHubDesktopsAreIndependent(t *testing.T) {
	h := NewHub(DefaultConfig(), nil, nil, nil)
	_, a, _ := h.Create()
	_, b, _ := h.Create()

	require.NoError(t, a.ClickDock("finder"))
	a.Submit("help")

	assert.Empty(t, b.Windows())
	assert.Empty(t, b.TerminalState().History)
}

func TestHubCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDesktops = 2
	h := NewHub(cfg, nil, nil, nil)

	_, _, err := h.Create()
	require.NoError(t, err)
	_, _, err = h.Create()
	require.NoError(t, err)
	_, _, err = h.Create()
	assert.ErrorIs(t, err, ErrHubFull)
}

func TestHubSweep(t *testing.T) {
	obs := newCountingObserver()
	h := NewHub(DefaultConfig(), nil, obs, nil)
	stale, _, _ := h.Create()
	_, fresh, _ := h.Create()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, fresh.ClickDock("finder"))

	removed := h.Sweep(time.Now(), 3*time.Millisecond)
	assert.Equal(t, 1, removed)
	_, err := h.Get(stale.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, obs.active)

	assert.Zero(t, h.Sweep(time.Now(), 0))
}

func TestHubSweepLogsDesktopAge(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHub(DefaultConfig(), nil, nil, zap.New(core))
	deskID, _, err := h.Create()
	require.NoError(t, err)

	later := time.Now().Add(time.Hour)
	require.Equal(t, 1, h.Sweep(later, time.Minute))

	entries := logs.FilterMessage("evicting idle desktop").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, deskID.String(), fields["desktop_id"])
	age, ok := fields["age"].(time.Duration)
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), age.Seconds(), 5)
}

func TestRunSweeperStops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Millisecond
	h := NewHub(cfg, nil, nil, nil)
	_, _, _ = h.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return h.Stats().Desktops == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
