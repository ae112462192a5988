package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"jarvis_bot/internal/model"
	"jarvis_bot/internal/storage"
)

// historyWindow is how many of the most recent interactions per domain feed
// the novelty and diversity sub-scores.
const historyWindow = 50

// Engine ties the per-domain content pools, the preference profile, and the
// interaction log together. Pools are transient and replaced wholesale on
// refresh; profile and log live in storage.
type Engine struct {
	store storage.Storage
	log   *slog.Logger

	now       func() time.Time
	randFloat func() float64

	mu       sync.RWMutex
	pools    map[model.Domain][]model.Item
	lastPick map[model.Domain]model.Item
}

// New creates an Engine backed by the given storage.
func New(store storage.Storage, log *slog.Logger) *Engine {
	return &Engine{
		store:     store,
		log:       log,
		now:       time.Now,
		randFloat: rand.Float64,
		pools:     make(map[model.Domain][]model.Item),
		lastPick:  make(map[model.Domain]model.Item),
	}
}

// ReplacePool swaps in a whole new candidate set for one domain. The previous
// pool is discarded; there is no incremental merge.
func (e *Engine) ReplacePool(domain model.Domain, items []model.Item) {
	e.mu.Lock()
	e.pools[domain] = items
	e.mu.Unlock()
	e.log.Debug("replaced content pool", "domain", domain, "items", len(items))
}

// PoolSize returns the number of candidates currently held for a domain.
func (e *Engine) PoolSize(domain model.Domain) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.pools[domain])
}

// Recommend selects one personalized item from the domain's pool, or nil when
// the pool is empty. Storage read failures degrade to defaults rather than
// surfacing: a recommendation built on a stale profile beats no answer.
func (e *Engine) Recommend(ctx context.Context, domain model.Domain) *model.Item {
	e.mu.RLock()
	pool := e.pools[domain]
	e.mu.RUnlock()
	if len(pool) == 0 {
		return nil
	}

	profile, err := e.store.Profile(ctx)
	if err != nil {
		e.log.Warn("load profile", "error", err)
		profile = model.DefaultProfile()
	}
	history, err := e.store.RecentInteractions(ctx, domain, historyWindow)
	if err != nil {
		e.log.Warn("load interaction history", "domain", domain, "error", err)
		history = nil
	}

	item := pick(pool, domain, profile, history, e.now(), e.randFloat)
	if item != nil {
		e.mu.Lock()
		e.lastPick[domain] = *item
		e.mu.Unlock()
	}
	return item
}

// LastPick returns the most recently recommended item for a domain, so the
// command layer can attach later reactions to it.
func (e *Engine) LastPick(domain model.Domain) (model.Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	item, ok := e.lastPick[domain]
	return item, ok
}

// RecordInteraction appends the reaction to the interaction log and, for
// strong positive signals (liked, completed, or a rating of 4+), reinforces
// the preference profile with the item's signals. This append-and-cap loop is
// the system's only learning mechanism.
func (e *Engine) RecordInteraction(ctx context.Context, domain model.Domain, item model.Item, kind model.InteractionKind, rating int, feedback string) error {
	rec := model.Interaction{
		Timestamp:   e.now().UTC(),
		Domain:      domain,
		ItemID:      item.ID,
		Kind:        kind,
		Rating:      rating,
		Feedback:    feedback,
		Title:       item.Title,
		Attribution: item.Attribution,
		Category:    firstCategory(item),
		Categories:  item.Categories,
		Authors:     item.Authors,
	}
	if err := e.store.AppendInteraction(ctx, rec); err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}

	if !isPositive(kind, rating) {
		return nil
	}

	profile, err := e.store.Profile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	strategyFor(domain).reinforce(profile, item)
	if err := e.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	e.log.Debug("reinforced preferences", "domain", domain, "item_id", item.ID, "kind", kind, "rating", rating)
	return nil
}

// Profile returns the current preference profile.
func (e *Engine) Profile(ctx context.Context) (*model.Profile, error) {
	return e.store.Profile(ctx)
}

// ResetProfile restores the hard-coded default profile.
func (e *Engine) ResetProfile(ctx context.Context) error {
	if err := e.store.SaveProfile(ctx, model.DefaultProfile()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	e.log.Info("preference profile reset to defaults")
	return nil
}

func isPositive(kind model.InteractionKind, rating int) bool {
	return kind == model.KindLiked || kind == model.KindCompleted || rating >= 4
}
