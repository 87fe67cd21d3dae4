package search

import (
	"fmt"
	"testing"

	"github.com/hyperjump/notegraph/internal/models"
)

func benchNotes(n int) []*models.Note {
	out := make([]*models.Note, n)
	for i := range out {
		out[i] = &models.Note{
			ID:      fmt.Sprintf("n%d", i),
			Title:   fmt.Sprintf("Note %d", i),
			Content: "# Heading\n\nSome text about arrays, trees and graphs.",
			Tags:    []string{"dsa", fmt.Sprintf("t%d", i%10)},
		}
	}
	return out
}

func BenchmarkLinear(b *testing.B) {
	notes := benchNotes(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Search("t7", notes)
	}
}

func BenchmarkLinear_NoMatch(b *testing.B) {
	notes := benchNotes(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Search("nothing here", notes)
	}
}
