package recommend

import (
	"jarvis_bot/internal/model"
)

// strategy holds the domain-specific parts of the engine: how an item is
// matched against the profile, how repetition is penalized, and which
// signals a positive interaction feeds back into the profile.
type strategy interface {
	// preferenceMatch scores the overlap between the item's text fields and
	// the profile's interest lists. Each implementation caps its result.
	preferenceMatch(item model.Item, p *model.Profile) float64
	// diversity penalizes repetition against the given recent history
	// entries. Each implementation has its own penalty floor.
	diversity(item model.Item, recent []model.Interaction) float64
	// reinforce merges the item's signals into the profile after a strong
	// positive interaction.
	reinforce(p *model.Profile, item model.Item)
}

func strategyFor(d model.Domain) strategy {
	switch d {
	case model.DomainVideo:
		return videoStrategy{}
	case model.DomainBook:
		return bookStrategy{}
	default:
		return articleStrategy{}
	}
}
