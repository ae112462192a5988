package recommend

import (
	"strings"

	"jarvis_bot/internal/model"
)

type articleStrategy struct{}

// preferenceMatch gives 1.0 for category membership and 0.8 for source
// membership, capped at 2.0.
func (articleStrategy) preferenceMatch(item model.Item, p *model.Profile) float64 {
	category := strings.ToLower(firstCategory(item))
	source := strings.ToLower(item.Attribution)

	score := 0.0
	for _, preferred := range p.ArticleCategories.Values() {
		if category != "" && strings.ToLower(preferred) == category {
			score += 1.0
			break
		}
	}
	for _, preferred := range p.ArticleSources.Values() {
		if source != "" && strings.ToLower(preferred) == source {
			score += 0.8
			break
		}
	}
	return min(score, 2.0)
}

// diversity penalizes categories repeated in the recent history, 0.1 per
// repeat with a floor of 0.5.
func (articleStrategy) diversity(item model.Item, recent []model.Interaction) float64 {
	category := strings.ToLower(firstCategory(item))
	repeats := 0
	for _, rec := range recent {
		if rec.Category != "" && strings.ToLower(rec.Category) == category {
			repeats++
		}
	}
	if repeats == 0 {
		return 1.0
	}
	return max(0.5, 1.0-0.1*float64(repeats))
}

// reinforce appends the article's category and source to the respective
// preference lists.
func (articleStrategy) reinforce(p *model.Profile, item model.Item) {
	if cat := firstCategory(item); cat != "" {
		p.ArticleCategories.Add(cat)
	}
	if item.Attribution != "" {
		p.ArticleSources.Add(item.Attribution)
	}
}

func firstCategory(item model.Item) string {
	if len(item.Categories) == 0 {
		return ""
	}
	return item.Categories[0]
}
