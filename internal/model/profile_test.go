package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterestListAdd(t *testing.T) {
	tests := []struct {
		name string
		max  int
		adds []string
		want []string
	}{
		{
			name: "append in order",
			max:  5,
			adds: []string{"a", "b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "duplicates dropped",
			max:  5,
			adds: []string{"a", "b", "a", "b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "oldest evicted at capacity",
			max:  3,
			adds: []string{"a", "b", "c", "d", "e"},
			want: []string{"c", "d", "e"},
		},
		{
			name: "empty strings ignored",
			max:  3,
			adds: []string{"", "a", ""},
			want: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewInterestList(tt.max)
			for _, v := range tt.adds {
				l.Add(v)
			}
			if diff := cmp.Diff(tt.want, l.Values()); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
			if l.Len() > tt.max {
				t.Errorf("Len %d exceeds capacity %d", l.Len(), tt.max)
			}
		})
	}
}

func TestInterestListAddReportsNew(t *testing.T) {
	l := NewInterestList(3, "a")
	if !l.Add("b") {
		t.Error("expected Add of new value to report true")
	}
	if l.Add("a") {
		t.Error("expected Add of duplicate to report false")
	}
	if l.Add("") {
		t.Error("expected Add of empty string to report false")
	}
}

func TestInterestListTop(t *testing.T) {
	l := NewInterestList(5, "a", "b", "c")
	if diff := cmp.Diff([]string{"a", "b"}, l.Top(2)); diff != "" {
		t.Errorf("Top(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, l.Top(10)); diff != "" {
		t.Errorf("Top(10) mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	p := DefaultProfile()
	p.BookAuthors.Add("Donald Knuth")
	p.ArticleSources.Add("Ars Technica")

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Profile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(p.VideoInterests.Values(), got.VideoInterests.Values()); diff != "" {
		t.Errorf("video interests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p.BookAuthors.Values(), got.BookAuthors.Values()); diff != "" {
		t.Errorf("book authors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p.ArticleSources.Values(), got.ArticleSources.Values()); diff != "" {
		t.Errorf("article sources mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileUnmarshalReimposesInvariants(t *testing.T) {
	// A stored document with duplicates and more genres than the cap allows.
	doc := `{
		"video_interests": ["go", "go", "rust"],
		"book_genres": ["g1","g2","g3","g4","g5","g6","g7","g8","g9","g10"],
		"book_authors": [],
		"article_categories": ["technology"],
		"article_sources": []
	}`

	var p Profile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff([]string{"go", "rust"}, p.VideoInterests.Values()); diff != "" {
		t.Errorf("duplicates not dropped (-want +got):\n%s", diff)
	}
	if p.BookGenres.Len() != MaxBookGenres {
		t.Errorf("book genres len = %d, want cap %d", p.BookGenres.Len(), MaxBookGenres)
	}
	// Newest entries survive the cap.
	if !p.BookGenres.Contains("g10") || p.BookGenres.Contains("g1") {
		t.Errorf("expected oldest genres evicted, got %v", p.BookGenres.Values())
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.VideoInterests.Len() == 0 || p.BookGenres.Len() == 0 || p.ArticleCategories.Len() == 0 {
		t.Error("expected seeded defaults for video, book, and article lists")
	}
	if p.BookAuthors.Len() != 0 || p.ArticleSources.Len() != 0 {
		t.Error("expected empty author and source lists by default")
	}
}
