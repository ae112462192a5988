package model

import "encoding/json"

// Interest list capacities per domain.
const (
	MaxVideoInterests    = 10
	MaxBookGenres        = 8
	MaxBookAuthors       = 15
	MaxArticleCategories = 6
	MaxArticleSources    = 10
)

// InterestList is an ordered, de-duplicated list of interest signals with a
// fixed capacity. New entries are appended at the end; once the capacity is
// exceeded the oldest entries are evicted, so insertion order doubles as a
// recency-of-addition signal.
type InterestList struct {
	max    int
	values []string
}

// NewInterestList creates a list with the given capacity and seed values.
// Duplicates in the seed are dropped, keeping the first occurrence.
func NewInterestList(max int, values ...string) InterestList {
	l := InterestList{max: max}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Add appends v if it is not already present, evicting the oldest entry when
// the list is full. It reports whether v was newly added.
func (l *InterestList) Add(v string) bool {
	if v == "" || l.Contains(v) {
		return false
	}
	l.values = append(l.values, v)
	if l.max > 0 && len(l.values) > l.max {
		l.values = l.values[len(l.values)-l.max:]
	}
	return true
}

// Contains reports whether v is present in the list.
func (l InterestList) Contains(v string) bool {
	for _, have := range l.values {
		if have == v {
			return true
		}
	}
	return false
}

// Values returns the entries in insertion order, oldest first.
func (l InterestList) Values() []string {
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Top returns up to n entries from the front of the list.
func (l InterestList) Top(n int) []string {
	if n > len(l.values) {
		n = len(l.values)
	}
	out := make([]string, n)
	copy(out, l.values[:n])
	return out
}

// Len returns the number of entries.
func (l InterestList) Len() int {
	return len(l.values)
}

// MarshalJSON encodes the list as a plain JSON array.
func (l InterestList) MarshalJSON() ([]byte, error) {
	if l.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.values)
}

// Profile holds the per-domain interest signals inferred from positive
// interactions. Lists are bounded, de-duplicated, and insertion-ordered.
type Profile struct {
	VideoInterests    InterestList
	BookGenres        InterestList
	BookAuthors       InterestList
	ArticleCategories InterestList
	ArticleSources    InterestList
}

// DefaultProfile returns the hard-coded starting profile used until the
// reinforcement loop has learned anything.
func DefaultProfile() *Profile {
	return &Profile{
		VideoInterests:    NewInterestList(MaxVideoInterests, "python programming", "productivity", "machine learning"),
		BookGenres:        NewInterestList(MaxBookGenres, "programming", "technology", "productivity"),
		BookAuthors:       NewInterestList(MaxBookAuthors),
		ArticleCategories: NewInterestList(MaxArticleCategories, "technology", "business", "science"),
		ArticleSources:    NewInterestList(MaxArticleSources),
	}
}

type profileJSON struct {
	VideoInterests    InterestList `json:"video_interests"`
	BookGenres        InterestList `json:"book_genres"`
	BookAuthors       InterestList `json:"book_authors"`
	ArticleCategories InterestList `json:"article_categories"`
	ArticleSources    InterestList `json:"article_sources"`
}

// MarshalJSON encodes the profile as a document of plain string arrays.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(profileJSON{
		VideoInterests:    p.VideoInterests,
		BookGenres:        p.BookGenres,
		BookAuthors:       p.BookAuthors,
		ArticleCategories: p.ArticleCategories,
		ArticleSources:    p.ArticleSources,
	})
}

// UnmarshalJSON decodes a profile document, re-imposing the capacity and
// de-duplication invariants on whatever was stored.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		VideoInterests    []string `json:"video_interests"`
		BookGenres        []string `json:"book_genres"`
		BookAuthors       []string `json:"book_authors"`
		ArticleCategories []string `json:"article_categories"`
		ArticleSources    []string `json:"article_sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.VideoInterests = NewInterestList(MaxVideoInterests, raw.VideoInterests...)
	p.BookGenres = NewInterestList(MaxBookGenres, raw.BookGenres...)
	p.BookAuthors = NewInterestList(MaxBookAuthors, raw.BookAuthors...)
	p.ArticleCategories = NewInterestList(MaxArticleCategories, raw.ArticleCategories...)
	p.ArticleSources = NewInterestList(MaxArticleSources, raw.ArticleSources...)
	return nil
}
