package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hyperjump/notegraph/internal/models"
)

// MemoryStorage implements Storage in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu        sync.RWMutex
	notes     map[string]*models.Note
	order     map[string]int
	seq       int
	questions []models.Question
	progress  map[string]map[int]models.Progress
	profiles  map[string]*models.Profile
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notes:    make(map[string]*models.Note),
		order:    make(map[string]int),
		progress: make(map[string]map[int]models.Progress),
		profiles: make(map[string]*models.Profile),
	}
}

// CreateNote stores a copy of note.
func (m *MemoryStorage) CreateNote(_ context.Context, note *models.Note) error {
	stampNew(note)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; ok {
		return fmt.Errorf("note %s already exists", note.ID)
	}
	m.notes[note.ID] = note.Clone()
	m.order[note.ID] = m.seq
	m.seq++
	return nil
}

// GetNote returns a copy of the note with id.
func (m *MemoryStorage) GetNote(_ context.Context, id string) (*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n.Clone(), nil
}

// UpdateNote replaces the stored note.
func (m *MemoryStorage) UpdateNote(_ context.Context, note *models.Note) error {
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now()
	}
	note.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		return fmt.Errorf("note %s: %w", note.ID, ErrNotFound)
	}
	m.notes[note.ID] = note.Clone()
	return nil
}

// DeleteNote removes a note. Missing ids are ignored.
func (m *MemoryStorage) DeleteNote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, id)
	delete(m.order, id)
	return nil
}

// ListNotes returns a user's notes, most recently updated first; ties keep insertion order.
func (m *MemoryStorage) ListNotes(_ context.Context, userID string) ([]*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Note{}
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return m.order[out[i].ID] < m.order[out[j].ID]
	})
	return out, nil
}

// ListQuestions returns questions matching filter ordered by week and number.
func (m *MemoryStorage) ListQuestions(_ context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Question{}
	for _, q := range m.questions {
		if matchQuestion(filter, q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// ReplaceQuestions swaps the question bank.
func (m *MemoryStorage) ReplaceQuestions(_ context.Context, questions []models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append([]models.Question{}, questions...)
	return nil
}

// ListProgress returns a user's progress rows ordered by question id.
func (m *MemoryStorage) ListProgress(_ context.Context, userID string) ([]models.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Progress{}
	for _, p := range m.progress[userID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

// UpsertProgress inserts or updates a progress row.
func (m *MemoryStorage) UpsertProgress(_ context.Context, p *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.progress[p.UserID]
	if !ok {
		rows = make(map[int]models.Progress)
		m.progress[p.UserID] = rows
	}
	rows[p.QuestionID] = *p
	return nil
}

// GetProfile returns a copy of a profile.
func (m *MemoryStorage) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	c := *p
	return &c, nil
}

// UpsertProfile stores a copy of p.
func (m *MemoryStorage) UpsertProfile(_ context.Context, p *models.Profile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.profiles[p.ID] = &c
	return nil
}

// CountNotes returns the number of stored notes.
func (m *MemoryStorage) CountNotes(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.notes)), nil
}

// CountQuestions returns the number of stored questions.
func (m *MemoryStorage) CountQuestions(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.questions)), nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
