package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jarvis_bot/internal/model"
)

const volumesURL = "https://www.googleapis.com/books/v1/volumes"

var techCategoryWords = []string{
	"computers", "programming", "technology", "business", "self-help",
}

// Books fetches book candidates from the Google Books volumes API, one
// subject search per configured topic.
type Books struct {
	client HTTPClient
	apiKey string
	topics []string
	now    func() time.Time
}

// NewBooks creates a book fetcher searching the given subject topics. The
// API key is optional; unauthenticated requests get a lower quota.
func NewBooks(client HTTPClient, apiKey string, topics []string) *Books {
	return &Books{client: client, apiKey: apiKey, topics: topics, now: time.Now}
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			RatingsCount  int      `json:"ratingsCount"`
			PublishedDate string   `json:"publishedDate"`
			InfoLink      string   `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Fetch runs one subject search per topic and returns the de-duplicated
// candidate set. Topics that fail are skipped; the error is non-nil only
// when every topic failed.
func (b *Books) Fetch(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	var errs []error
	seen := make(map[string]bool)

	for _, topic := range b.topics {
		found, err := b.search(ctx, topic)
		if err != nil {
			errs = append(errs, fmt.Errorf("search %q: %w", topic, err))
			continue
		}
		for _, item := range found {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			items = append(items, item)
		}
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func (b *Books) search(ctx context.Context, topic string) ([]model.Item, error) {
	query := url.Values{}
	query.Set("q", "subject:"+topic)
	query.Set("orderBy", "relevance")
	query.Set("maxResults", "10")
	if b.apiKey != "" {
		query.Set("key", b.apiKey)
	}

	body, err := get(ctx, b.client, volumesURL+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode volumes: %w", err)
	}

	now := b.now()
	items := make([]model.Item, 0, len(resp.Items))
	for _, vol := range resp.Items {
		info := vol.VolumeInfo
		item := model.Item{
			ID:          vol.ID,
			Title:       info.Title,
			Description: truncate(info.Description, 300),
			Attribution: firstString(info.Authors),
			Categories:  info.Categories,
			Authors:     info.Authors,
			URL:         info.InfoLink,
			PublishedAt: parsePublishedDate(info.PublishedDate),
			Rating:      info.AverageRating,
			RatingCount: info.RatingsCount,
		}
		item.Relevance = bookRelevance(item, now)
		items = append(items, item)
	}
	return items, nil
}

// bookRelevance is the ingestion-time quality signal: base 1.0, boosted for
// high ratings, popularity, technical categories, and recent publication.
func bookRelevance(item model.Item, now time.Time) float64 {
	score := 1.0

	switch {
	case item.Rating >= 4.5:
		score += 1.0
	case item.Rating >= 4.0:
		score += 0.7
	case item.Rating >= 3.5:
		score += 0.4
	}

	switch {
	case item.RatingCount > 1000:
		score += 0.5
	case item.RatingCount > 100:
		score += 0.3
	}

	allCategories := strings.ToLower(strings.Join(item.Categories, " "))
	for _, word := range techCategoryWords {
		if strings.Contains(allCategories, word) {
			score += 0.6
			break
		}
	}

	if item.PublishedAt != nil {
		age := now.Year() - item.PublishedAt.Year()
		switch {
		case age <= 3:
			score += 0.4
		case age <= 7:
			score += 0.2
		}
	}
	return score
}

// parsePublishedDate handles the partial dates Google Books returns: a full
// date, a year-month, or a bare year. Anything else is treated as unknown.
func parsePublishedDate(s string) *time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func firstString(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
