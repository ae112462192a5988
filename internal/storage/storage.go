// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"jarvis_bot/internal/model"
)

// MaxInteractions is how many interaction records the log retains. Older
// records are evicted first, FIFO by insertion.
const MaxInteractions = 1000

// Storage is the interface for all persistence operations.
//
// Profile loads fall back to the hard-coded defaults when the stored record
// is missing or corrupt; only infrastructure failures surface as errors.
type Storage interface {
	Profile(ctx context.Context) (*model.Profile, error)
	SaveProfile(ctx context.Context, p *model.Profile) error

	AppendInteraction(ctx context.Context, rec model.Interaction) error
	// RecentInteractions returns up to limit of the newest records for one
	// domain, ordered oldest first.
	RecentInteractions(ctx context.Context, domain model.Domain, limit int) ([]model.Interaction, error)
	// ListInteractions returns every retained record, ordered oldest first.
	ListInteractions(ctx context.Context) ([]model.Interaction, error)

	Close() error
}
