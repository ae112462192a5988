package recommend

import (
	"context"
	"fmt"
	"sort"

	"jarvis_bot/internal/model"
)

// DayActivity is one (weekday, interaction count) pair.
type DayActivity struct {
	Day   string
	Count int
}

// Insights is a read-only summary of the interaction log and the current
// profile, for the stats command.
type Insights struct {
	TotalInteractions    int
	ByDomain             map[model.Domain]int
	MostActiveDays       []DayActivity
	TopVideoInterests    []string
	TopBookGenres        []string
	TopArticleCategories []string
}

// Insights aggregates over the full interaction log. It never mutates state;
// records with missing timestamps are skipped from the weekday ranking rather
// than failing the whole aggregation.
func (e *Engine) Insights(ctx context.Context) (*Insights, error) {
	interactions, err := e.store.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	profile, err := e.store.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	byDomain := make(map[model.Domain]int)
	dayCounts := make(map[string]int)
	for _, rec := range interactions {
		byDomain[rec.Domain]++
		if rec.Timestamp.IsZero() {
			continue
		}
		dayCounts[rec.Timestamp.Weekday().String()]++
	}

	days := make([]DayActivity, 0, len(dayCounts))
	for day, count := range dayCounts {
		days = append(days, DayActivity{Day: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return days[i].Day < days[j].Day
	})

	return &Insights{
		TotalInteractions:    len(interactions),
		ByDomain:             byDomain,
		MostActiveDays:       days,
		TopVideoInterests:    profile.VideoInterests.Top(5),
		TopBookGenres:        profile.BookGenres.Top(5),
		TopArticleCategories: profile.ArticleCategories.Top(5),
	}, nil
}
