package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/storage"
)

func openDemo(t *testing.T, opts ...Option) (*Store, storage.Storage) {
	t.Helper()
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	require.NoError(t, storage.SeedDemo(ctx, st, "u1"))
	s, err := Open(ctx, st, "u1", opts...)
	require.NoError(t, err)
	return s, st
}

func TestOpen_SelectsFirstNote(t *testing.T) {
	s, _ := openDemo(t)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}

func TestCreate_BlankNote(t *testing.T) {
	s, st := openDemo(t)
	ctx := context.Background()

	n, err := s.Create(ctx, "Trees")
	require.NoError(t, err)
	assert.Equal(t, models.UntitledTitle, n.Title)
	assert.Equal(t, models.BlankContent, n.Content)
	assert.Equal(t, models.StatusInProgress, n.Status)
	assert.Equal(t, "Trees", n.Folder)
	assert.Empty(t, n.Tags)
	assert.Empty(t, n.Links)
	assert.False(t, n.AIGenerated)
	assert.Nil(t, n.SourceAPI)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, n.ID, sel.ID)

	list, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, n.ID, list[0].ID, "new notes go first")

	_, err = st.GetNote(ctx, n.ID)
	assert.NoError(t, err)
}

func TestCreate_AllFolderFallsBackToFirstFolder(t *testing.T) {
	s, _ := openDemo(t)
	n, err := s.Create(context.Background(), models.FolderAll)
	require.NoError(t, err)
	assert.Equal(t, "Arrays", n.Folder)
}

func TestCreate_UnknownFolder(t *testing.T) {
	s, st := openDemo(t)
	ctx := context.Background()
	before, _ := s.Selected()

	_, err := s.Create(ctx, "Bogus Folder")
	assert.ErrorIs(t, err, models.ErrInvalid)

	list, err := s.List()
	require.NoError(t, err)
	assert.Len(t, list, 5)
	stored, err := st.ListNotes(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored, 5)
	sel, _ := s.Selected()
	assert.Equal(t, before.ID, sel.ID)
}

func TestCreateAI(t *testing.T) {
	s, _ := openDemo(t)
	before, _ := s.Selected()

	n, err := s.CreateAI(context.Background(), "Explain Generated: heaps...", "body", models.FolderAI, "explain")
	require.NoError(t, err)
	assert.True(t, n.AIGenerated)
	assert.Equal(t, []string{models.AIGeneratedTag}, n.Tags)
	require.NotNil(t, n.SourceAPI)
	assert.Equal(t, "explain", *n.SourceAPI)
	assert.Equal(t, models.StatusInProgress, n.Status)

	after, _ := s.Selected()
	assert.Equal(t, before.ID, after.ID, "AI notes do not steal the selection")
}

func TestUpdate_MirrorsAddedAndRemovedLinks(t *testing.T) {
	s, st := openDemo(t)
	ctx := context.Background()

	// note 2 links to 1; link it to 5 and drop 1
	n2, err := s.Get("2")
	require.NoError(t, err)
	n2.Links = []string{"5"}
	_, err = s.Update(ctx, n2)
	require.NoError(t, err)

	n5, _ := s.Get("5")
	assert.Contains(t, n5.Links, "2")
	n1, _ := s.Get("1")
	assert.NotContains(t, n1.Links, "2")

	persisted, err := st.GetNote(ctx, "5")
	require.NoError(t, err)
	assert.Contains(t, persisted.Links, "2")
}

func TestUpdate_SkipsSelfAndUnknownLinks(t *testing.T) {
	s, _ := openDemo(t)
	ctx := context.Background()
	n3, _ := s.Get("3")
	n3.Links = append(n3.Links, "3", "missing")

	got, err := s.Update(ctx, n3)
	require.NoError(t, err)
	assert.Contains(t, got.Links, "missing")
	assert.Contains(t, got.Links, "3")

	all, _ := s.List()
	assert.Len(t, all, 5)
}

func TestUpdate_KeepsIdentityAndProvenance(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s, _ := openDemo(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	ai, err := s.CreateAI(ctx, "Research Generated: tries...", "x", models.FolderAI, "research")
	require.NoError(t, err)

	ai.AIGenerated = false
	ai.SourceAPI = nil
	ai.UserID = "intruder"
	ai.Title = "Tries"
	got, err := s.Update(ctx, ai)
	require.NoError(t, err)
	assert.Equal(t, "Tries", got.Title)
	assert.True(t, got.AIGenerated)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, fixed, got.UpdatedAt)

	sel, _ := s.Selected()
	assert.Equal(t, ai.ID, sel.ID)
}

func TestUpdate_MirroringDisabled(t *testing.T) {
	s, _ := openDemo(t, WithMirrorLinks(false))
	n2, _ := s.Get("2")
	n2.Links = []string{"5"}
	_, err := s.Update(context.Background(), n2)
	require.NoError(t, err)

	n5, _ := s.Get("5")
	assert.NotContains(t, n5.Links, "2")
}

func TestUpdate_Validation(t *testing.T) {
	s, _ := openDemo(t)
	n, _ := s.Get("1")
	n.Status = "finished"
	_, err := s.Update(context.Background(), n)
	assert.Error(t, err)

	n, _ = s.Get("1")
	n.Folder = "Nope"
	_, err = s.Update(context.Background(), n)
	assert.ErrorIs(t, err, models.ErrInvalid)
	kept, _ := s.Get("1")
	assert.Equal(t, "Arrays", kept.Folder)

	_, err = s.Update(context.Background(), &models.Note{ID: "404"})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDelete_StripsLinksAndClearsSelection(t *testing.T) {
	s, st := openDemo(t)
	ctx := context.Background()
	_, err := s.Select("4")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "4"))

	_, ok := s.Selected()
	assert.False(t, ok)

	all, err := s.List()
	require.NoError(t, err)
	for _, n := range all {
		assert.NotEqual(t, "4", n.ID)
		assert.NotContains(t, n.Links, "4", "note %s still links to deleted note", n.ID)
	}

	persisted, err := st.GetNote(ctx, "3")
	require.NoError(t, err)
	assert.NotContains(t, persisted.Links, "4")

	_, err = s.Select("4")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "4"), storage.ErrNotFound))
}

func TestFilterAndFolderCounts(t *testing.T) {
	s, _ := openDemo(t)
	arrays, err := s.Filter("Arrays")
	require.NoError(t, err)
	require.Len(t, arrays, 1)
	assert.Equal(t, "1", arrays[0].ID)

	all, _ := s.Filter(models.FolderAll)
	assert.Len(t, all, 5)

	counts, err := s.FolderCounts()
	require.NoError(t, err)
	require.Len(t, counts, len(models.Folders)+1)
	assert.Equal(t, FolderCount{Name: "all", Count: 5}, counts[0])
	assert.Equal(t, FolderCount{Name: "Arrays", Count: 1}, counts[1])
}

func TestSavedPlans(t *testing.T) {
	clock := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s, _ := openDemo(t, WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	ctx := context.Background()

	_, err := s.CreateAI(ctx, "30-Day Beginner DSA Study Plan", "a", models.FolderStudyPlans, StudyPlanSource)
	require.NoError(t, err)
	_, err = s.CreateAI(ctx, "Custom plan", "b", models.FolderStudyPlans, StudyPlanSource)
	require.NoError(t, err)
	_, err = s.CreateAI(ctx, "7-Day Advanced notes", "c", models.FolderAI, "explain")
	require.NoError(t, err)

	plans, err := s.SavedPlans()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Custom plan", plans[0].Title)
	assert.Equal(t, "Unknown", plans[0].Duration)
	assert.Equal(t, "Unknown", plans[0].Level)
	assert.Equal(t, "30 days", plans[1].Duration)
	assert.Equal(t, "Beginner", plans[1].Level)
}

func TestClosedStore(t *testing.T) {
	s, _ := openDemo(t)
	s.Close()
	_, err := s.List()
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = s.Create(context.Background(), "Arrays")
	assert.ErrorIs(t, err, ErrNoSession)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	reg := NewSessions(st, nil)

	a, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	b, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Same(t, a, b)

	assert.True(t, reg.End("u1"))
	assert.False(t, reg.End("u1"))
	_, err = a.List()
	assert.ErrorIs(t, err, ErrNoSession)

	c, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	reg.CloseAll()
}

type recordingIndexer struct {
	indexed map[string]string
	deleted []string
}

func (r *recordingIndexer) Index(_ context.Context, n *models.Note) error {
	r.indexed[n.ID] = n.Title
	return nil
}

func (r *recordingIndexer) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.indexed, id)
	return nil
}

func TestStore_KeepsIndexerInStep(t *testing.T) {
	idx := &recordingIndexer{indexed: map[string]string{}}
	s, _ := openDemo(t, WithIndexer(idx))
	ctx := context.Background()
	assert.Len(t, idx.indexed, 5, "open indexes the loaded notes")

	n, err := s.Create(ctx, "Trees")
	require.NoError(t, err)
	assert.Equal(t, models.UntitledTitle, idx.indexed[n.ID])

	n.Title = "AVL Trees"
	_, err = s.Update(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, "AVL Trees", idx.indexed[n.ID])

	require.NoError(t, s.Delete(ctx, n.ID))
	assert.Equal(t, []string{n.ID}, idx.deleted)
	assert.Len(t, idx.indexed, 5)
}
