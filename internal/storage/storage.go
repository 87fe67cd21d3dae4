// Package storage defines the persistence interface for notes, questions, progress, and profiles.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/notegraph/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines note, question, progress, and profile persistence operations.
type Storage interface {
	// Note operations
	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id string) (*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, userID string) ([]*models.Note, error)

	// Question bank
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	ReplaceQuestions(ctx context.Context, questions []models.Question) error

	// Progress
	ListProgress(ctx context.Context, userID string) ([]models.Progress, error)
	UpsertProgress(ctx context.Context, p *models.Progress) error

	// Profiles
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error

	// Stats
	CountNotes(ctx context.Context) (int64, error)
	CountQuestions(ctx context.Context) (int64, error)

	Close() error
}
