package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"jarvis_bot/internal/model"
	"jarvis_bot/internal/recommend"
	"jarvis_bot/internal/storage"
)

type stubSource struct {
	items   []model.Item
	err     error
	calls   int
	fetched chan struct{}
}

func (s *stubSource) Fetch(ctx context.Context) ([]model.Item, error) {
	s.calls++
	if s.fetched != nil {
		s.fetched <- struct{}{}
	}
	return s.items, s.err
}

func newTestRefresher(t *testing.T) (*Refresher, *recommend.Engine) {
	t.Helper()
	store, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := recommend.New(store, log)
	return New(engine, log), engine
}

func TestRefreshNowReplacesPool(t *testing.T) {
	r, engine := newTestRefresher(t)
	src := &stubSource{items: []model.Item{
		{ID: "a1", Title: "First"},
		{ID: "a2", Title: "Second"},
	}}
	r.AddSource(model.DomainArticle, src, time.Hour)

	n, err := r.RefreshNow(context.Background(), model.DomainArticle)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d items, want 2", n)
	}
	if got := engine.PoolSize(model.DomainArticle); got != 2 {
		t.Errorf("pool size = %d, want 2", got)
	}

	// A later refresh replaces the pool wholesale rather than appending.
	src.items = []model.Item{{ID: "a3", Title: "Third"}}
	if _, err := r.RefreshNow(context.Background(), model.DomainArticle); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if got := engine.PoolSize(model.DomainArticle); got != 1 {
		t.Errorf("pool size after replace = %d, want 1", got)
	}
}

func TestRefreshNowUnknownDomain(t *testing.T) {
	r, _ := newTestRefresher(t)
	if _, err := r.RefreshNow(context.Background(), model.DomainVideo); err == nil {
		t.Error("expected error for a domain with no source")
	}
}

func TestRefreshNowFetchErrorKeepsPool(t *testing.T) {
	r, engine := newTestRefresher(t)
	src := &stubSource{items: []model.Item{{ID: "b1", Title: "Kept"}}}
	r.AddSource(model.DomainBook, src, time.Hour)

	if _, err := r.RefreshNow(context.Background(), model.DomainBook); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	src.items = nil
	src.err = errors.New("upstream down")
	if _, err := r.RefreshNow(context.Background(), model.DomainBook); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := engine.PoolSize(model.DomainBook); got != 1 {
		t.Errorf("pool size = %d, want the stale pool kept", got)
	}
}

func TestRefreshDueHonorsIntervals(t *testing.T) {
	r, _ := newTestRefresher(t)
	fresh := &stubSource{items: []model.Item{{ID: "v1"}}}
	stale := &stubSource{items: []model.Item{{ID: "n1"}}}
	r.AddSource(model.DomainVideo, fresh, time.Hour)
	r.AddSource(model.DomainArticle, stale, time.Hour)

	// First pass refreshes everything.
	r.refreshDue(context.Background())
	if fresh.calls != 1 || stale.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", fresh.calls, stale.calls)
	}

	// Nothing is due again within the interval.
	r.refreshDue(context.Background())
	if fresh.calls != 1 || stale.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1 inside interval", fresh.calls, stale.calls)
	}

	// Backdate one source past its interval and only it refreshes.
	r.mu.Lock()
	r.sources[model.DomainArticle].last = time.Now().Add(-2 * time.Hour)
	r.mu.Unlock()

	r.refreshDue(context.Background())
	if fresh.calls != 1 || stale.calls != 2 {
		t.Errorf("calls = %d/%d, want 1/2 after backdating", fresh.calls, stale.calls)
	}
}

func TestRefreshDueFailureConsumesInterval(t *testing.T) {
	r, _ := newTestRefresher(t)
	src := &stubSource{err: errors.New("upstream down")}
	r.AddSource(model.DomainVideo, src, time.Hour)

	r.refreshDue(context.Background())
	r.refreshDue(context.Background())
	if src.calls != 1 {
		t.Errorf("calls = %d, want 1: a failed fetch should not retry every tick", src.calls)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _ := newTestRefresher(t)
	r.SetTickInterval(10 * time.Millisecond)
	src := &stubSource{items: []model.Item{{ID: "v1"}}, fetched: make(chan struct{})}
	r.AddSource(model.DomainVideo, src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	// Wait for the startup refresh before cancelling.
	select {
	case <-src.fetched:
	case <-time.After(time.Second):
		t.Fatal("no startup refresh")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
