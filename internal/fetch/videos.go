package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"jarvis_bot/internal/model"
)

const channelFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

var educationalChannelWords = []string{
	"tutorial", "course", "learning", "education", "academy", "university",
}

var programmingTitleWords = []string{
	"python", "javascript", "programming", "coding", "development", "tutorial",
}

// Videos fetches recent uploads from the configured YouTube channels via
// their public RSS feeds.
type Videos struct {
	client   HTTPClient
	channels []string
	now      func() time.Time
}

// NewVideos creates a video fetcher over the given channel IDs.
func NewVideos(client HTTPClient, channelIDs []string) *Videos {
	return &Videos{client: client, channels: channelIDs, now: time.Now}
}

// Fetch downloads every channel feed and returns the combined candidate set.
// Channels that fail are skipped; the error is non-nil only when every
// channel failed.
func (v *Videos) Fetch(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	var errs []error
	parser := gofeed.NewParser()

	for _, channelID := range v.channels {
		url := fmt.Sprintf(channelFeedURL, channelID)
		body, err := get(ctx, v.client, url)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch channel %s: %w", channelID, err))
			continue
		}
		parsed, err := parser.ParseString(string(body))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse channel %s: %w", channelID, err))
			continue
		}
		items = append(items, v.videos(parsed)...)
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func (v *Videos) videos(parsed *gofeed.Feed) []model.Item {
	now := v.now()
	items := make([]model.Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := model.Item{
			ID:          videoID(entry),
			Title:       entry.Title,
			Description: truncate(entry.Description, 300),
			Attribution: parsed.Title,
			URL:         entry.Link,
			PublishedAt: entry.PublishedParsed,
		}
		item.Relevance = videoRelevance(item, now)
		items = append(items, item)
	}
	return items
}

// videoRelevance is the ingestion-time quality signal: base 1.0, boosted for
// freshness, educational channels, and programming titles.
func videoRelevance(item model.Item, now time.Time) float64 {
	score := 1.0

	if item.PublishedAt != nil {
		days := int(now.Sub(*item.PublishedAt).Hours() / 24)
		switch {
		case days < 7:
			score += 0.5
		case days < 30:
			score += 0.3
		}
	}

	channel := strings.ToLower(item.Attribution)
	for _, word := range educationalChannelWords {
		if strings.Contains(channel, word) {
			score += 0.4
			break
		}
	}

	title := strings.ToLower(item.Title)
	for _, word := range programmingTitleWords {
		if strings.Contains(title, word) {
			score += 0.2
		}
	}
	return score
}

// videoID strips the yt:video: prefix YouTube feeds put on entry GUIDs.
func videoID(entry *gofeed.Item) string {
	if id, ok := strings.CutPrefix(entry.GUID, "yt:video:"); ok {
		return id
	}
	return entryGUID(entry)
}
