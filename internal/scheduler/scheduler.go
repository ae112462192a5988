// Package scheduler periodically refreshes the per-domain content pools.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jarvis_bot/internal/model"
	"jarvis_bot/internal/recommend"
)

// Source fetches a replacement content pool for one domain.
type Source interface {
	Fetch(ctx context.Context) ([]model.Item, error)
}

type domainSource struct {
	source   Source
	interval time.Duration
	last     time.Time
}

// Refresher runs the refresh loop: each domain's pool is replaced wholesale
// on its own interval, one domain at a time.
type Refresher struct {
	engine *recommend.Engine
	log    *slog.Logger
	tick   time.Duration

	mu      sync.Mutex
	sources map[model.Domain]*domainSource
}

// New creates a Refresher with no sources registered.
func New(engine *recommend.Engine, log *slog.Logger) *Refresher {
	return &Refresher{
		engine:  engine,
		log:     log,
		tick:    1 * time.Minute,
		sources: make(map[model.Domain]*domainSource),
	}
}

// AddSource registers a fetch source for a domain with its refresh interval.
func (r *Refresher) AddSource(domain model.Domain, src Source, every time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[domain] = &domainSource{source: src, interval: every}
}

// SetTickInterval overrides the default 1-minute due-check interval.
func (r *Refresher) SetTickInterval(d time.Duration) {
	r.tick = d
}

// Run starts the refresh loop, blocking until ctx is cancelled. Every domain
// is refreshed once at startup.
func (r *Refresher) Run(ctx context.Context) {
	r.refreshDue(ctx)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshDue(ctx)
		}
	}
}

// RefreshNow fetches a fresh pool for one domain immediately and reports how
// many candidates it now holds.
func (r *Refresher) RefreshNow(ctx context.Context, domain model.Domain) (int, error) {
	r.mu.Lock()
	ds, ok := r.sources[domain]
	r.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("no source configured for domain %q", domain)
	}

	items, err := ds.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch %s pool: %w", domain, err)
	}

	r.engine.ReplacePool(domain, items)

	r.mu.Lock()
	ds.last = time.Now()
	r.mu.Unlock()

	r.log.Info("refreshed content pool", "domain", domain, "items", len(items))
	return len(items), nil
}

func (r *Refresher) refreshDue(ctx context.Context) {
	r.mu.Lock()
	var due []model.Domain
	now := time.Now()
	for domain, ds := range r.sources {
		if ds.last.IsZero() || now.Sub(ds.last) >= ds.interval {
			due = append(due, domain)
		}
	}
	r.mu.Unlock()

	for _, domain := range due {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.RefreshNow(ctx, domain); err != nil {
			r.log.Error("refresh pool", "domain", domain, "error", err)
			// Failed fetches still consume the interval; the stale pool
			// keeps serving until the next cycle.
			r.mu.Lock()
			if ds, ok := r.sources[domain]; ok {
				ds.last = time.Now()
			}
			r.mu.Unlock()
		}
	}
}
