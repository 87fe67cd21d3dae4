// Package notes owns a user's working set of notes: creation, full-record
// updates with mirrored links, deletion, selection and folder views.
package notes

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// ErrNoSession is returned by a Store after Close.
var ErrNoSession = errors.New("note session is closed")

// StudyPlanSource is the source_api value of notes saved from the plan generator.
const StudyPlanSource = "study-plan-generator"

// Indexer receives every note the store persists or removes.
type Indexer interface {
	Index(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}

// Store is one user's note session. All mutations are serialised.
type Store struct {
	mu       sync.Mutex
	storage  storage.Storage
	indexer  Indexer
	userID   string
	mirror   bool
	logger   *zap.Logger
	now      func() time.Time
	notes    []*models.Note
	selected string
	closed   bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures on linked peers.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithMirrorLinks turns mirrored link maintenance on or off. It is on by default.
func WithMirrorLinks(on bool) Option {
	return func(s *Store) {
		s.mirror = on
	}
}

// WithIndexer keeps idx in step with the session's notes.
func WithIndexer(idx Indexer) Option {
	return func(s *Store) {
		s.indexer = idx
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads userID's notes from st and returns the session. The first
// note, if any, starts out selected.
func Open(ctx context.Context, st storage.Storage, userID string, opts ...Option) (*Store, error) {
	s := &Store{
		storage: st,
		userID:  userID,
		mirror:  true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = utils.OrNop(s.logger)

	list, err := st.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	s.notes = list
	if len(list) > 0 {
		s.selected = list[0].ID
	}
	for _, n := range list {
		s.reindex(ctx, n)
	}
	return s, nil
}

func (s *Store) reindex(ctx context.Context, n *models.Note) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Index(ctx, n); err != nil {
		s.logger.Warn("failed to index note", zap.String("note", n.ID), zap.Error(err))
	}
}

func (s *Store) unindex(ctx context.Context, id string) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to remove note from index", zap.String("note", id), zap.Error(err))
	}
}

// UserID returns the session owner.
func (s *Store) UserID() string {
	return s.userID
}

// Close ends the session. Later calls return ErrNoSession.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.notes = nil
	s.selected = ""
}

// Create adds a blank note to folder and selects it. The pseudo-folder
// "all" and an empty name file the note under the first fixed folder.
func (s *Store) Create(ctx context.Context, folder string) (*models.Note, error) {
	if folder == "" || folder == models.FolderAll {
		folder = models.Folders[0]
	}
	n := &models.Note{
		Title:   models.UntitledTitle,
		Content: models.BlankContent,
		Folder:  folder,
		Status:  models.StatusInProgress,
	}
	created, err := s.insert(ctx, n)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.selected = created.ID
	s.mu.Unlock()
	return created, nil
}

// CreateAI stores generated content as a note tagged "ai-generated". The
// selection is left unchanged.
func (s *Store) CreateAI(ctx context.Context, title, content, folder, sourceAPI string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrInvalid)
	}
	n := &models.Note{
		Title:       title,
		Content:     content,
		Folder:      folder,
		Status:      models.StatusInProgress,
		Tags:        []string{models.AIGeneratedTag},
		AIGenerated: true,
		SourceAPI:   models.StringPtr(sourceAPI),
	}
	return s.insert(ctx, n)
}

func (s *Store) insert(ctx context.Context, n *models.Note) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	now := s.now()
	n.ID = uuid.New().String()
	n.UserID = s.userID
	n.CreatedAt = now
	n.UpdatedAt = now
	n.Normalize()
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.CreateNote(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	s.notes = append([]*models.Note{n}, s.notes...)
	s.reindex(ctx, n)
	return n.Clone(), nil
}

// Update replaces the stored record for note.ID with note and selects it.
// Identity, ownership, creation time and AI provenance are kept from the
// stored record. With mirroring on, every newly linked note gains a link
// back and every unlinked note loses its link back.
func (s *Store) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	idx := s.indexOf(note.ID)
	if idx < 0 {
		return nil, fmt.Errorf("note %s: %w", note.ID, storage.ErrNotFound)
	}
	prev := s.notes[idx]

	next := note.Clone()
	next.UserID = prev.UserID
	next.CreatedAt = prev.CreatedAt
	next.AIGenerated = prev.AIGenerated
	next.SourceAPI = prev.SourceAPI
	next.UpdatedAt = s.now()
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateNote(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	s.notes[idx] = next
	s.selected = next.ID
	s.reindex(ctx, next)

	if s.mirror {
		added, removed := diffLinks(prev.Links, next.Links)
		for _, id := range added {
			s.mirrorPeer(ctx, id, next.ID, true)
		}
		for _, id := range removed {
			s.mirrorPeer(ctx, id, next.ID, false)
		}
	}
	return next.Clone(), nil
}

// mirrorPeer adds or removes the back link from peerID to id. Self links and
// unknown peers are skipped. Caller holds s.mu.
func (s *Store) mirrorPeer(ctx context.Context, peerID, id string, link bool) {
	if peerID == id {
		return
	}
	idx := s.indexOf(peerID)
	if idx < 0 {
		return
	}
	peer := s.notes[idx]
	if peer.HasLink(id) == link {
		return
	}
	updated := peer.Clone()
	if link {
		updated.Links = append(updated.Links, id)
	} else {
		updated.Links = removeID(updated.Links, id)
	}
	updated.UpdatedAt = s.now()
	if err := s.storage.UpdateNote(ctx, updated); err != nil {
		s.logger.Error("failed to mirror link", zap.String("note", peerID), zap.String("peer", id), zap.Error(err))
		return
	}
	s.notes[idx] = updated
}

// Delete removes the note, strips its id from every other note's links
// when mirroring, and clears the selection.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNoSession
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	if err := s.storage.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.selected = ""
	s.unindex(ctx, id)

	if s.mirror {
		for _, n := range s.notes {
			if n.HasLink(id) {
				s.mirrorPeer(ctx, n.ID, id, false)
			}
		}
	}
	return nil
}

// Get returns a copy of the note with id.
func (s *Store) Get(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	return s.notes[idx].Clone(), nil
}

// List returns copies of all notes in session order.
func (s *Store) List() ([]*models.Note, error) {
	return s.Filter(models.FolderAll)
}

// Filter returns copies of the notes in folder; "all" returns every note.
func (s *Store) Filter(folder string) ([]*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	out := make([]*models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if folder == "" || folder == models.FolderAll || n.Folder == folder {
			out = append(out, n.Clone())
		}
	}
	return out, nil
}

// Select marks id as the selected note.
func (s *Store) Select(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	s.selected = id
	return s.notes[idx].Clone(), nil
}

// Selected returns the selected note, or false when nothing is selected.
func (s *Store) Selected() (*models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.selected == "" {
		return nil, false
	}
	idx := s.indexOf(s.selected)
	if idx < 0 {
		return nil, false
	}
	return s.notes[idx].Clone(), true
}

// FolderCount is the number of notes in one folder.
type FolderCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FolderCounts returns the "all" total followed by each fixed folder's count.
func (s *Store) FolderCounts() ([]FolderCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoSession
	}
	byFolder := make(map[string]int, len(models.Folders))
	for _, n := range s.notes {
		byFolder[n.Folder]++
	}
	out := make([]FolderCount, 0, len(models.Folders)+1)
	out = append(out, FolderCount{Name: models.FolderAll, Count: len(s.notes)})
	for _, f := range models.Folders {
		out = append(out, FolderCount{Name: f, Count: byFolder[f]})
	}
	return out, nil
}

var durationPattern = regexp.MustCompile(`(\d+)-Day`)

var planLevels = []string{"Beginner", "Intermediate", "Advanced"}

// SavedPlans lists study plans saved as notes, newest first.
func (s *Store) SavedPlans() ([]models.SavedPlan, error) {
	s.mu.Lock()
	var matched []*models.Note
	closed := s.closed
	for _, n := range s.notes {
		if n.Folder == models.FolderStudyPlans && n.SourceAPI != nil && *n.SourceAPI == StudyPlanSource {
			matched = append(matched, n.Clone())
		}
	}
	s.mu.Unlock()
	if closed {
		return nil, ErrNoSession
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	out := make([]models.SavedPlan, 0, len(matched))
	for _, n := range matched {
		out = append(out, models.SavedPlan{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
			Duration:  PlanDuration(n.Title),
			Level:     PlanLevel(n.Title),
		})
	}
	return out, nil
}

// PlanDuration extracts "N days" from a plan title such as "30-Day Beginner DSA Study Plan".
func PlanDuration(title string) string {
	m := durationPattern.FindStringSubmatch(title)
	if m == nil {
		return "Unknown"
	}
	return m[1] + " days"
}

// PlanLevel returns the first known level named in title.
func PlanLevel(title string) string {
	lower := strings.ToLower(title)
	for _, l := range planLevels {
		if strings.Contains(lower, strings.ToLower(l)) {
			return l
		}
	}
	return "Unknown"
}

func (s *Store) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func diffLinks(prev, next []string) (added, removed []string) {
	inPrev := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		inPrev[id] = struct{}{}
	}
	inNext := make(map[string]struct{}, len(next))
	for _, id := range next {
		inNext[id] = struct{}{}
		if _, ok := inPrev[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if _, ok := inNext[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
