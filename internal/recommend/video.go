package recommend

import (
	"strings"

	"jarvis_bot/internal/model"
)

// videoVocabulary is the fixed set of keywords the reinforcement loop scans
// liked videos for. Only vocabulary terms ever enter the interest list, so a
// noisy title cannot flood the profile.
var videoVocabulary = []string{
	"python", "javascript", "programming", "coding", "tutorial",
	"machine learning", "ai", "development", "software", "tech",
}

type videoStrategy struct{}

// preferenceMatch sums substring matches of each interest term against the
// title (full credit), description (0.6), and channel (0.4), normalized by
// the interest list length and capped at 2.0.
func (videoStrategy) preferenceMatch(item model.Item, p *model.Profile) float64 {
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	channel := strings.ToLower(item.Attribution)

	score := 0.0
	for _, interest := range p.VideoInterests.Values() {
		term := strings.ToLower(interest)
		switch {
		case strings.Contains(title, term):
			score += 1.0
		case strings.Contains(desc, term):
			score += 0.6
		case strings.Contains(channel, term):
			score += 0.4
		}
	}

	n := p.VideoInterests.Len()
	if n == 0 {
		n = 1
	}
	return min(score/float64(n), 2.0)
}

// diversity penalizes channels that already appear in the recent history,
// 0.2 per repeat with a floor of 0.3.
func (videoStrategy) diversity(item model.Item, recent []model.Interaction) float64 {
	channel := strings.ToLower(item.Attribution)
	repeats := 0
	for _, rec := range recent {
		if rec.Attribution != "" && strings.ToLower(rec.Attribution) == channel {
			repeats++
		}
	}
	if repeats == 0 {
		return 1.0
	}
	return max(0.3, 1.0-0.2*float64(repeats))
}

// reinforce scans the title and the first ~20 words of the description for
// vocabulary terms and appends any hits to the interest list.
func (videoStrategy) reinforce(p *model.Profile, item model.Item) {
	words := strings.Fields(strings.ToLower(item.Title))
	descWords := strings.Fields(strings.ToLower(item.Description))
	if len(descWords) > 20 {
		descWords = descWords[:20]
	}
	text := strings.Join(append(words, descWords...), " ")

	for _, keyword := range videoVocabulary {
		if strings.Contains(text, keyword) {
			p.VideoInterests.Add(keyword)
		}
	}
}
