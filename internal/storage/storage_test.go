package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/notegraph/internal/models"
)

// backends returns every Storage implementation available in this environment.
func backends(t *testing.T) map[string]Storage {
	t.Helper()
	out := map[string]Storage{"memory": NewMemoryStorage()}

	sqlite, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "sub", "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	out["sqlite"] = sqlite

	if dsn := os.Getenv("NOTEGRAPH_TEST_DSN"); dsn != "" {
		pg, err := NewPostgresStorage(context.Background(), dsn)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = pg.db.Exec(`TRUNCATE notes, questions, user_progress, profiles`)
		out["postgres"] = pg
	}
	for _, s := range out {
		s := s
		t.Cleanup(func() { _ = s.Close() })
	}
	return out
}

func TestStorage_NoteCRUD(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			note := &models.Note{
				ID:        "n1",
				UserID:    "u1",
				Title:     "Graphs",
				Content:   "# Graphs",
				Folder:    "Graphs",
				Status:    models.StatusInProgress,
				Tags:      []string{"bfs", "dfs", "bfs"},
				Links:     []string{"n2"},
				SourceAPI: models.StringPtr("explain"),
			}
			if err := store.CreateNote(ctx, note); err != nil {
				t.Fatal(err)
			}
			if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
				t.Error("timestamps should be set")
			}

			got, err := store.GetNote(ctx, "n1")
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != "Graphs" || len(got.Tags) != 2 || len(got.Links) != 1 {
				t.Errorf("got %+v", got)
			}
			if got.SourceAPI == nil || *got.SourceAPI != "explain" {
				t.Errorf("source_api = %v", got.SourceAPI)
			}

			got.Title = "Graph Theory"
			got.Status = models.StatusMastered
			got.UpdatedAt = time.Time{}
			if err := store.UpdateNote(ctx, got); err != nil {
				t.Fatal(err)
			}
			got, _ = store.GetNote(ctx, "n1")
			if got.Title != "Graph Theory" || got.Status != models.StatusMastered {
				t.Errorf("update not persisted: %+v", got)
			}

			missing := &models.Note{ID: "nope", Title: "x", Folder: "Graphs", Status: models.StatusMastered}
			if err := store.UpdateNote(ctx, missing); !errors.Is(err, ErrNotFound) {
				t.Errorf("update missing: err = %v, want ErrNotFound", err)
			}

			if err := store.DeleteNote(ctx, "n1"); err != nil {
				t.Fatal(err)
			}
			if _, err := store.GetNote(ctx, "n1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("get after delete: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorage_ListNotesByUserNewestFirst(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)
			for i, id := range []string{"a", "b", "c"} {
				ts := base.Add(time.Duration(i) * time.Minute)
				n := &models.Note{ID: id, UserID: "u1", Title: id, Folder: "Arrays", Status: models.StatusToRevisit, CreatedAt: ts, UpdatedAt: ts}
				if err := store.CreateNote(ctx, n); err != nil {
					t.Fatal(err)
				}
			}
			other := &models.Note{ID: "z", UserID: "u2", Title: "z", Folder: "Arrays", Status: models.StatusToRevisit}
			if err := store.CreateNote(ctx, other); err != nil {
				t.Fatal(err)
			}

			notes, err := store.ListNotes(ctx, "u1")
			if err != nil {
				t.Fatal(err)
			}
			if len(notes) != 3 {
				t.Fatalf("got %d notes, want 3", len(notes))
			}
			if notes[0].ID != "c" || notes[2].ID != "a" {
				t.Errorf("order = %s,%s,%s", notes[0].ID, notes[1].ID, notes[2].ID)
			}
			count, err := store.CountNotes(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if count != 4 {
				t.Errorf("CountNotes = %d, want 4", count)
			}
		})
	}
}

func TestStorage_Questions(t *testing.T) {
	questions := []models.Question{
		{ID: 3, Week: 2, Number: 1, Title: "Valid Parentheses", Difficulty: "easy", Topic: "Stack", EstimatedTime: "20 mins"},
		{ID: 1, Week: 1, Number: 1, Title: "Two Sum", Difficulty: "Easy", Topic: "Array", EstimatedTime: "15 mins"},
		{ID: 2, Week: 1, Number: 2, Title: "3Sum", Difficulty: "Medium", Topic: "Array", EstimatedTime: "30 mins"},
	}
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.ReplaceQuestions(ctx, questions); err != nil {
				t.Fatal(err)
			}

			all, err := store.ListQuestions(ctx, models.QuestionFilter{})
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != 3 || all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
				t.Errorf("unexpected order: %+v", all)
			}

			easy, err := store.ListQuestions(ctx, models.QuestionFilter{Difficulties: []string{"EASY"}})
			if err != nil {
				t.Fatal(err)
			}
			if len(easy) != 2 {
				t.Errorf("difficulty filter: got %d, want 2", len(easy))
			}

			week1Array, err := store.ListQuestions(ctx, models.QuestionFilter{Week: 1, Topics: []string{"Array"}})
			if err != nil {
				t.Fatal(err)
			}
			if len(week1Array) != 2 {
				t.Errorf("week+topic filter: got %d, want 2", len(week1Array))
			}

			if err := store.ReplaceQuestions(ctx, questions[:1]); err != nil {
				t.Fatal(err)
			}
			if n, _ := store.CountQuestions(ctx); n != 1 {
				t.Errorf("CountQuestions after replace = %d, want 1", n)
			}
		})
	}
}

func TestStorage_ProgressAndProfile(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()
			if err := store.UpsertProgress(ctx, &models.Progress{UserID: "u1", QuestionID: 7, Completed: false}); err != nil {
				t.Fatal(err)
			}
			if err := store.UpsertProgress(ctx, &models.Progress{UserID: "u1", QuestionID: 7, Completed: true, CompletedAt: &now}); err != nil {
				t.Fatal(err)
			}
			rows, err := store.ListProgress(ctx, "u1")
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 1 || !rows[0].Completed || rows[0].CompletedAt == nil {
				t.Errorf("progress = %+v", rows)
			}

			if _, err := store.GetProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing profile: err = %v", err)
			}
			p := &models.Profile{ID: "u1", Email: "a@example.com", Username: "algo"}
			if err := store.UpsertProfile(ctx, p); err != nil {
				t.Fatal(err)
			}
			p.FullName = "Ada"
			if err := store.UpsertProfile(ctx, p); err != nil {
				t.Fatal(err)
			}
			got, err := store.GetProfile(ctx, "u1")
			if err != nil {
				t.Fatal(err)
			}
			if got.FullName != "Ada" || got.Username != "algo" {
				t.Errorf("profile = %+v", got)
			}
		})
	}
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	if err := SeedDemo(ctx, store, "local"); err != nil {
		t.Fatal(err)
	}
	notes, err := store.ListNotes(ctx, "local")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 5 {
		t.Fatalf("got %d demo notes, want 5", len(notes))
	}
	if notes[0].ID != "1" || notes[4].ID != "5" {
		t.Errorf("demo order: first=%s last=%s", notes[0].ID, notes[4].ID)
	}
	// second call is a no-op
	if err := SeedDemo(ctx, store, "local"); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.CountNotes(ctx); n != 5 {
		t.Errorf("reseeding added notes: %d", n)
	}
}
