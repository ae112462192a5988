package recommend

import (
	"strings"

	"jarvis_bot/internal/model"
)

type bookStrategy struct{}

// preferenceMatch gives 1.0 per matching genre and 2.0 per matching favored
// author (author signal is deliberately stronger), plus a 0.5 bonus for a
// rating of 4.0 or better, capped at 3.0.
func (bookStrategy) preferenceMatch(item model.Item, p *model.Profile) float64 {
	categories := make([]string, len(item.Categories))
	for i, cat := range item.Categories {
		categories[i] = strings.ToLower(cat)
	}
	authors := make([]string, len(item.Authors))
	for i, author := range item.Authors {
		authors[i] = strings.ToLower(author)
	}

	score := 0.0
	for _, genre := range p.BookGenres.Values() {
		g := strings.ToLower(genre)
		for _, cat := range categories {
			if strings.Contains(cat, g) {
				score += 1.0
				break
			}
		}
	}
	for _, favored := range p.BookAuthors.Values() {
		f := strings.ToLower(favored)
		for _, author := range authors {
			if strings.Contains(author, f) {
				score += 2.0
				break
			}
		}
	}
	if item.Rating >= 4.0 {
		score += 0.5
	}
	return min(score, 3.0)
}

// diversity penalizes category overlap with the recent history, 0.15 per
// overlapping category with a floor of 0.4.
func (bookStrategy) diversity(item model.Item, recent []model.Interaction) float64 {
	seen := make(map[string]bool)
	for _, rec := range recent {
		for _, cat := range rec.Categories {
			seen[strings.ToLower(cat)] = true
		}
	}

	overlap := 0
	counted := make(map[string]bool)
	for _, cat := range item.Categories {
		c := strings.ToLower(cat)
		if seen[c] && !counted[c] {
			overlap++
			counted[c] = true
		}
	}
	if overlap == 0 {
		return 1.0
	}
	return max(0.4, 1.0-0.15*float64(overlap))
}

// reinforce appends the book's normalized category tags as genres and its
// authors as favored authors.
func (bookStrategy) reinforce(p *model.Profile, item model.Item) {
	for _, cat := range item.Categories {
		genre := strings.ReplaceAll(strings.ToLower(cat), " ", "")
		p.BookGenres.Add(genre)
	}
	for _, author := range item.Authors {
		p.BookAuthors.Add(author)
	}
}
