package desktop

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/id"
)

// HubObserver extends Observer with hub-level gauges
type HubObserver interface {
	Observer
	DesktopsActive(n int)
}

type nopHubObserver struct{ nopObserver }

func (nopHubObserver) DesktopsActive(int) {}

// Hub holds independent desktops keyed by id
type Hub struct {
	mu       sync.RWMutex
	desktops map[id.DesktopID]*Desktop

	cfg      Config
	catalog  *content.Catalog
	observer HubObserver
	logger   *zap.Logger
}

// Stats summarizes hub occupancy
type Stats struct {
	Desktops int `json:"desktops"`
	Max      int `json:"max"`
}

// NewHub creates an empty hub. Observer and logger may be nil.
func NewHub(cfg Config, catalog *content.Catalog, observer HubObserver, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopHubObserver{}
	}
	if catalog == nil {
		catalog = content.Default()
	}
	return &Hub{
		desktops: make(map[id.DesktopID]*Desktop),
		cfg:      cfg,
		catalog:  catalog,
		observer: observer,
		logger:   logger,
	}
}

// Create makes a new desktop.
func (h *Hub) Create() (id.DesktopID, *Desktop, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cfg.MaxDesktops > 0 && len(h.desktops) >= h.cfg.MaxDesktops {
		return "", nil, fmt.Errorf("%w: %d", ErrHubFull, h.cfg.MaxDesktops)
	}

	deskID := id.NewDesktopID()
	d := New(h.cfg, h.catalog, h.observer, h.logger.With(zap.String("desktop_id", deskID.String())))
	h.desktops[deskID] = d
	h.observer.DesktopsActive(len(h.desktops))

	h.logger.Info("desktop created", zap.String("desktop_id", deskID.String()))
	return deskID, d, nil
}

// Get returns the desktop for a raw id.
func (h *Hub) Get(raw string) (*Desktop, error) {
	deskID, err := id.ParseDesktopID(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	d, ok := h.desktops[deskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, raw)
	}
	return d, nil
}

// Delete removes a desktop.
func (h *Hub) Delete(raw string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	deskID := id.DesktopID(raw)
	if _, ok := h.desktops[deskID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, raw)
	}
	delete(h.desktops, deskID)
	h.observer.DesktopsActive(len(h.desktops))

	h.logger.Info("desktop deleted", zap.String("desktop_id", raw))
	return nil
}

// List returns desktop ids, oldest first.
func (h *Hub) List() []id.DesktopID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]id.DesktopID, 0, len(h.desktops))
	for deskID := range h.desktops {
		ids = append(ids, deskID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Stats reports occupancy.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{Desktops: len(h.desktops), Max: h.cfg.MaxDesktops}
}

// Sweep drops desktops idle since before now-idle and returns how many went.
func (h *Hub) Sweep(now time.Time, idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := now.Add(-idle)

	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for deskID, d := range h.desktops {
		if d.LastUsed().Before(cutoff) {
			delete(h.desktops, deskID)
			removed++
			if created, err := id.Timestamp(deskID.String()); err == nil {
				h.logger.Debug("evicting idle desktop",
					zap.String("desktop_id", deskID.String()),
					zap.Duration("age", now.Sub(created)),
				)
			}
		}
	}
	if removed > 0 {
		h.observer.DesktopsActive(len(h.desktops))
		h.logger.Info("evicted idle desktops", zap.Int("count", removed))
	}
	return removed
}

// RunSweeper evicts idle desktops every interval until ctx is done.
func (h *Hub) RunSweeper(ctx context.Context, interval time.Duration) {
	if h.cfg.IdleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.Sweep(now, h.cfg.IdleTimeout)
		}
	}
}
