package recommend

import (
	"sort"
	"time"

	"jarvis_bot/internal/model"
)

// shortlistSize is how many top-scored items the weighted draw runs over.
const shortlistSize = 5

// pick scores every item in the pool, keeps the top-scored shortlist, and
// draws one entry at random with probability proportional to its score.
// Higher-scoring items are more likely but never guaranteed to win; always
// serving the single top item goes stale fast. Returns nil for an empty pool.
func pick(pool []model.Item, domain model.Domain, p *model.Profile, history []model.Interaction, now time.Time, randFloat func() float64) *model.Item {
	if len(pool) == 0 {
		return nil
	}

	type scored struct {
		item  model.Item
		score float64
	}
	ranked := make([]scored, 0, len(pool))
	for _, item := range pool {
		ranked = append(ranked, scored{item: item, score: Score(item, domain, p, history, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > shortlistSize {
		ranked = ranked[:shortlistSize]
	}

	weights := make([]float64, len(ranked))
	for i, s := range ranked {
		weights[i] = s.score
	}
	return &ranked[chooseIndex(weights, randFloat)].item
}

// chooseIndex performs weighted random selection over the given weights via
// a cumulative prefix-sum search. A non-positive total weight degrades to a
// uniform draw.
func chooseIndex(weights []float64, randFloat func() float64) int {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cum[i] = total
	}

	if total <= 0 {
		return clampIndex(int(randFloat()*float64(len(weights))), len(weights))
	}

	r := randFloat() * total
	return clampIndex(sort.SearchFloat64s(cum, r), len(weights))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
