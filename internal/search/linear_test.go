package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hyperjump/notegraph/internal/models"
)

func sampleNotes() []*models.Note {
	return []*models.Note{
		{ID: "1", Title: "Arrays", Content: "Two pointers and sliding window", Tags: []string{"data-structure"}},
		{ID: "2", Title: "Strings", Content: "KMP", Tags: []string{"Text-Processing"}},
		{ID: "3", Title: "Linked Lists", Content: "reverse a list", Tags: []string{"pointers"}},
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"title case-insensitive", "ARRAYS", []string{"1"}},
		{"content", "kmp", []string{"2"}},
		{"tag", "text-proc", []string{"2"}},
		{"input order kept", "pointers", []string{"1", "3"}},
		{"no match", "heap", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query, sampleNotes())
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, n := range got {
				if n.ID != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, n.ID, tt.want[i])
				}
			}
		})
	}
}

func TestSearch_CapsAtEight(t *testing.T) {
	var notes []*models.Note
	for i := 0; i < 20; i++ {
		notes = append(notes, &models.Note{ID: fmt.Sprint(i), Title: "Graph note"})
	}
	got := Search("graph", notes)
	if len(got) != MaxResults {
		t.Fatalf("got %d results, want %d", len(got), MaxResults)
	}
	for i, n := range got {
		if n.ID != fmt.Sprint(i) {
			t.Errorf("result %d = %s, want prefix order", i, n.ID)
		}
	}
}

func TestSearch_EveryHitMatches(t *testing.T) {
	for _, q := range []string{"a", "s", "in", "POINT", "-"} {
		for _, n := range Search(q, sampleNotes()) {
			if !Matches(n, q) {
				t.Errorf("query %q returned non-matching note %s", q, n.ID)
			}
		}
	}
}

func TestSnippet(t *testing.T) {
	got := Snippet("# Arrays\n\n**bold** and `code`")
	if got != " Arrays\n\nbold and code..." {
		t.Errorf("Snippet = %q", got)
	}
	long := Snippet(strings.Repeat("x", 150))
	if len(long) != 103 || !strings.HasSuffix(long, "...") {
		t.Errorf("long snippet length = %d", len(long))
	}
}

func TestPreviewTags(t *testing.T) {
	if got := PreviewTags([]string{"a", "b", "c", "d"}); len(got) != 3 {
		t.Errorf("PreviewTags = %v", got)
	}
	if got := PreviewTags([]string{"a"}); len(got) != 1 {
		t.Errorf("PreviewTags = %v", got)
	}
}
