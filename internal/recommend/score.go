// Package recommend implements the preference-learning recommendation engine:
// scoring candidate items against the user's profile and interaction history,
// weighted-random selection, and the reinforcement loop that feeds positive
// interactions back into the profile.
package recommend

import (
	"time"

	"jarvis_bot/internal/model"
)

// Weights of the composite score blend.
const (
	weightBase       = 0.30
	weightPreference = 0.35
	weightNovelty    = 0.15
	weightDiversity  = 0.10
	weightRecency    = 0.10
)

// diversityWindow is how many of the most recent history entries the
// diversity sub-score looks at.
const diversityWindow = 10

// Score computes the composite relevance score of one candidate item.
// It is deterministic and side-effect free: identical inputs always produce
// the same value. All randomness lives in the selector.
func Score(item model.Item, domain model.Domain, p *model.Profile, history []model.Interaction, now time.Time) float64 {
	base := item.Relevance
	if base <= 0 {
		base = 1.0
	}

	st := strategyFor(domain)

	return weightBase*base +
		weightPreference*st.preferenceMatch(item, p) +
		weightNovelty*noveltyScore(item.ID, history, now) +
		weightDiversity*diversityScore(st, item, history) +
		weightRecency*recencyScore(item.PublishedAt, now)
}

// noveltyScore is 1.0 for items never seen in the history window. A seen
// item starts near zero and recovers as time passes, but keeps a residual
// penalty of ~0.1 no matter how long ago it was shown.
func noveltyScore(itemID string, history []model.Interaction, now time.Time) float64 {
	var last time.Time
	seen := false
	for _, rec := range history {
		if rec.ItemID == itemID && !rec.Timestamp.After(now) && rec.Timestamp.After(last) {
			seen = true
			last = rec.Timestamp
		}
	}
	if !seen {
		return 1.0
	}
	days := int(now.Sub(last).Hours() / 24)
	penalty := 1.0 - 0.1*float64(days)
	if penalty < 0.1 {
		penalty = 0.1
	}
	return 1.0 - penalty
}

func diversityScore(st strategy, item model.Item, history []model.Interaction) float64 {
	if len(history) == 0 {
		return 1.0
	}
	recent := history
	if len(recent) > diversityWindow {
		recent = recent[len(recent)-diversityWindow:]
	}
	return st.diversity(item, recent)
}

// recencyScore prefers recently published content, tiered by age. Items with
// no usable publication date get a neutral 0.8.
func recencyScore(published *time.Time, now time.Time) float64 {
	if published == nil || published.IsZero() {
		return 0.8
	}
	days := int(now.Sub(*published).Hours() / 24)
	switch {
	case days <= 7:
		return 1.0
	case days <= 30:
		return 0.8
	case days <= 90:
		return 0.6
	case days <= 365:
		return 0.4
	default:
		return 0.2
	}
}
