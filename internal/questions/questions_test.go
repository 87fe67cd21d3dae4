package questions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/internal/watcher"
)

func TestDefault(t *testing.T) {
	qs, err := Default()
	require.NoError(t, err)
	require.Len(t, qs, 169)
	assert.Equal(t, "Two Sum", qs[0].Title)
	assert.Equal(t, "15 mins", qs[0].EstimatedTime)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", qs[0].URL)
	for i := 1; i < len(qs); i++ {
		prev, cur := qs[i-1], qs[i]
		assert.True(t, prev.Week < cur.Week || (prev.Week == cur.Week && prev.Number < cur.Number),
			"questions out of order at %d", i)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml list", "id: 1"},
		{"missing id", "- title: A"},
		{"duplicate id", "- {id: 1, title: A}\n- {id: 1, title: B}"},
		{"missing title", "- {id: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func writeSeed(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
}

func TestSyncer_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	s := NewSyncer(st, "", nil)

	wrote, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, wrote)
	n, err := st.CountQuestions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 169, n)

	wrote, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestSyncer_GlobMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, filepath.Join(dir, "week2.yaml"), "- {id: 3, week: 2, number: 1, title: C, difficulty: Hard}")
	writeSeed(t, filepath.Join(dir, "week1.yaml"), "- {id: 2, week: 1, number: 2, title: B}\n- {id: 1, week: 1, number: 1, title: A}")

	st := storage.NewMemoryStorage()
	s := NewSyncer(st, filepath.Join(dir, "*.yaml"), nil)
	require.NoError(t, s.Reload(context.Background()))

	qs, err := st.ListQuestions(context.Background(), models.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{qs[0].Title, qs[1].Title, qs[2].Title})

	_, err = NewSyncer(st, filepath.Join(dir, "*.json"), nil).Load()
	assert.Error(t, err)
}

func TestSyncer_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "questions.yaml")
	writeSeed(t, seed, "- {id: 1, week: 1, number: 1, title: A}")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := storage.NewMemoryStorage()
	s := NewSyncer(st, seed, nil)
	require.NoError(t, s.Reload(ctx))
	require.NoError(t, s.Watch(ctx, watcher.WithDebounce(30*time.Millisecond)))
	defer s.Stop()

	writeSeed(t, seed, "- {id: 1, week: 1, number: 1, title: A}\n- {id: 2, week: 1, number: 2, title: B}")

	require.Eventually(t, func() bool {
		n, err := st.CountQuestions(ctx)
		return err == nil && n == 2
	}, 3*time.Second, 20*time.Millisecond)

	writeSeed(t, seed, "not: [valid")
	time.Sleep(200 * time.Millisecond)
	n, err := st.CountQuestions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSyncer_WatchRequiresPattern(t *testing.T) {
	s := NewSyncer(storage.NewMemoryStorage(), "", nil)
	assert.Error(t, s.Watch(context.Background()))
}
