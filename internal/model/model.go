// Package model defines the domain types used across the application.
package model

import "time"

// Domain identifies a category of recommendable content.
type Domain string

// Supported content domains.
const (
	DomainVideo   Domain = "video"
	DomainBook    Domain = "book"
	DomainArticle Domain = "article"
)

// Domains lists every supported content domain.
var Domains = []Domain{DomainVideo, DomainBook, DomainArticle}

// Item is a single piece of recommendable content. Items are immutable once
// fetched; a content pool is replaced wholesale on every refresh.
type Item struct {
	ID          string
	Title       string
	Description string
	// Attribution is the channel, author, or source the item came from.
	Attribution string
	Categories  []string
	Authors     []string
	URL         string
	PublishedAt *time.Time
	Rating      float64
	RatingCount int
	// Relevance is the intrinsic quality score assigned at ingestion time.
	// Zero means unset; scoring treats it as 1.0.
	Relevance float64
}

// InteractionKind describes how the user reacted to a recommendation.
type InteractionKind string

// Supported interaction kinds.
const (
	KindViewed    InteractionKind = "viewed"
	KindLiked     InteractionKind = "liked"
	KindCompleted InteractionKind = "completed"
	KindDisliked  InteractionKind = "disliked"
)

// Interaction is one logged user reaction to a previously recommended item.
// It carries a snapshot of the item's attribution and category fields so
// later scoring does not depend on the item still being in a pool.
type Interaction struct {
	ID        int64
	Timestamp time.Time
	Domain    Domain
	ItemID    string
	Kind      InteractionKind
	// Rating is an optional 1-5 rating; zero means not rated.
	Rating   int
	Feedback string

	Title       string
	Attribution string
	Category    string
	Categories  []string
	Authors     []string
}
