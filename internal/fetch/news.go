package fetch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"jarvis_bot/internal/model"
)

// Feed is one configured news feed and the category its articles are filed
// under.
type Feed struct {
	Category string
	URL      string
}

var newsKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "programming",
	"software", "technology", "startup", "developer", "coding",
	"python", "javascript", "github", "tech", "innovation",
}

var reputableSources = []string{
	"techcrunch", "the verge", "wired", "ars technica",
	"hacker news", "engadget", "tech radar", "zdnet",
}

// News fetches articles from the configured RSS/Atom feeds.
type News struct {
	client HTTPClient
	feeds  []Feed
	now    func() time.Time
}

// NewNews creates a news fetcher over the given feeds.
func NewNews(client HTTPClient, feeds []Feed) *News {
	return &News{client: client, feeds: feeds, now: time.Now}
}

// Fetch downloads every configured feed and returns the combined candidate
// set. Feeds that fail are skipped; the error is non-nil only when every
// feed failed.
func (n *News) Fetch(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	var errs []error
	parser := gofeed.NewParser()

	for _, feed := range n.feeds {
		body, err := get(ctx, n.client, feed.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", feed.URL, err))
			continue
		}
		parsed, err := parser.ParseString(string(body))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", feed.URL, err))
			continue
		}
		items = append(items, n.articles(parsed, feed.Category)...)
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func (n *News) articles(parsed *gofeed.Feed, category string) []model.Item {
	now := n.now()
	items := make([]model.Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := model.Item{
			ID:          entryGUID(entry),
			Title:       entry.Title,
			Description: truncate(entry.Description, 300),
			Attribution: parsed.Title,
			Categories:  []string{category},
			URL:         entry.Link,
			PublishedAt: entry.PublishedParsed,
		}
		item.Relevance = newsRelevance(item, now)
		items = append(items, item)
	}
	return items
}

// newsRelevance is the ingestion-time quality signal: base 1.0, boosted for
// freshness, tech keyword hits, and reputable sources.
func newsRelevance(item model.Item, now time.Time) float64 {
	score := 1.0

	if item.PublishedAt != nil {
		hours := now.Sub(*item.PublishedAt).Hours()
		switch {
		case hours <= 6:
			score += 1.0
		case hours <= 24:
			score += 0.7
		case hours <= 48:
			score += 0.4
		}
	}

	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	for _, keyword := range newsKeywords {
		if strings.Contains(title, keyword) || strings.Contains(desc, keyword) {
			score += 0.3
		}
	}

	source := strings.ToLower(item.Attribution)
	for _, reputable := range reputableSources {
		if strings.Contains(source, reputable) {
			score += 0.5
			break
		}
	}
	return score
}

// entryGUID returns a stable identifier for a feed entry. Entries without a
// GUID get a hash of title+link.
func entryGUID(entry *gofeed.Item) string {
	if entry.GUID != "" {
		return entry.GUID
	}
	if entry.Link != "" {
		return entry.Link
	}
	h := sha256.Sum256([]byte(entry.Title + "|" + entry.Link))
	return fmt.Sprintf("sha256:%x", h[:16])
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
