package workers

import (
	"context"
	"log"
	"time"

	"pitchprice/dataset"
	"pitchprice/services"
)

// LoadFunc produces a fresh dataset snapshot from the configured source
type LoadFunc func(ctx context.Context) (*dataset.Store, error)

// LoadLogger records completed loads in the operational store
type LoadLogger interface {
	LogLoad(source, version string, batches, observations int, loadedAt time.Time) error
}

// RefreshWorker rebuilds the observation snapshot on a schedule or on
// demand and swaps it into the dashboard. The previous snapshot stays
// untouched; readers mid-request keep a consistent view.
type RefreshWorker struct {
	dashboard *services.Dashboard
	load      LoadFunc
	source    string
	logger    LoadLogger // may be nil
	trigger   chan struct{}
}

func NewRefreshWorker(dashboard *services.Dashboard, load LoadFunc, source string, logger LoadLogger) *RefreshWorker {
	return &RefreshWorker{
		dashboard: dashboard,
		load:      load,
		source:    source,
		logger:    logger,
		trigger:   make(chan struct{}, 1),
	}
}

// Trigger requests a refresh outside the schedule. Non-blocking; a
// pending trigger coalesces with the next one.
func (w *RefreshWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Run services scheduled and manual refreshes until the context ends
func (w *RefreshWorker) Run(ctx context.Context, interval time.Duration) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh worker stopping")
			return
		case <-tick:
			w.RefreshNow(ctx)
		case <-w.trigger:
			w.RefreshNow(ctx)
		}
	}
}

// RefreshNow loads a snapshot and swaps it in when its version differs
// from the active one.
func (w *RefreshWorker) RefreshNow(ctx context.Context) {
	store, err := w.load(ctx)
	if err != nil {
		log.Printf("Refresh: load failed from %s: %v", w.source, err)
		return
	}

	if store.Version == w.dashboard.Version() {
		log.Printf("Refresh: snapshot unchanged (%s)", store.Version)
		return
	}

	w.dashboard.SetStore(store)
	health := store.Health()
	log.Printf("Refresh: snapshot %s from %s: %d batches, %d observations (%d rate-bearing)",
		store.Version, w.source, store.Batches, health.Observations, health.RateBearing)

	if w.logger != nil {
		if err := w.logger.LogLoad(w.source, store.Version, store.Batches, health.Observations, store.LoadedAt); err != nil {
			log.Printf("Refresh: could not log load: %v", err)
		}
	}
}
