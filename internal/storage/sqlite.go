package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/notegraph/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		folder TEXT NOT NULL,
		status TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		links TEXT NOT NULL DEFAULT '[]',
		ai_generated INTEGER NOT NULL DEFAULT 0,
		source_api TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notes_user_updated ON notes(user_id, updated_at);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY,
		week INTEGER NOT NULL,
		number INTEGER NOT NULL,
		title TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		topic TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		estimated_time TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_questions_week_number ON questions(week, number);

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id TEXT NOT NULL,
		question_id INTEGER NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TIMESTAMP,
		PRIMARY KEY (user_id, question_id)
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

const noteColumns = `id, user_id, title, content, folder, status, tags, links, ai_generated, source_api, created_at, updated_at`

// CreateNote inserts a note. Zero timestamps are set to now.
func (s *SQLiteStorage) CreateNote(ctx context.Context, note *models.Note) error {
	stampNew(note)
	tags, links, err := encodeLists(note)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Content, note.Folder, string(note.Status),
		tags, links, note.AIGenerated, nullString(note.SourceAPI), note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote returns a note by ID.
func (s *SQLiteStorage) GetNote(ctx context.Context, id string) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	note, err := scanSQLiteNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return note, err
}

// UpdateNote replaces an existing note.
func (s *SQLiteStorage) UpdateNote(ctx context.Context, note *models.Note) error {
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now()
	}
	tags, links, err := encodeLists(note)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, folder = ?, status = ?, tags = ?, links = ?,
		 ai_generated = ?, source_api = ?, updated_at = ?
		 WHERE id = ?`,
		note.Title, note.Content, note.Folder, string(note.Status), tags, links,
		note.AIGenerated, nullString(note.SourceAPI), note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("note %s: %w", note.ID, ErrNotFound)
	}
	return nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteStorage) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return err
}

// ListNotes returns a user's notes, most recently updated first.
func (s *SQLiteStorage) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY updated_at DESC, rowid ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note, err := scanSQLiteNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var status, tags, links string
	var sourceAPI sql.NullString
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Folder, &status,
		&tags, &links, &note.AIGenerated, &sourceAPI, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	note.Status = models.Status(status)
	if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &note.Links); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links: %w", err)
	}
	if sourceAPI.Valid {
		note.SourceAPI = &sourceAPI.String
	}
	note.Normalize()
	return &note, nil
}

// ListQuestions returns questions matching filter ordered by week and number.
func (s *SQLiteStorage) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	where, args := questionWhere(filter, func(int) string { return "?" })
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, week, number, title, difficulty, topic, url, estimated_time FROM questions`+
			where+` ORDER BY week, number`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Week, &q.Number, &q.Title, &q.Difficulty, &q.Topic, &q.URL, &q.EstimatedTime); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ReplaceQuestions swaps the whole question bank in a transaction.
func (s *SQLiteStorage) ReplaceQuestions(ctx context.Context, questions []models.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (id, week, number, title, difficulty, topic, url, estimated_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range questions {
		if _, err := stmt.ExecContext(ctx, q.ID, q.Week, q.Number, q.Title, q.Difficulty, q.Topic, q.URL, q.EstimatedTime); err != nil {
			return fmt.Errorf("failed to insert question %d: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

// ListProgress returns all progress rows for a user.
func (s *SQLiteStorage) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, question_id, completed, completed_at FROM user_progress
		 WHERE user_id = ? ORDER BY question_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := []models.Progress{}
	for rows.Next() {
		var p models.Progress
		var completedAt sql.NullTime
		if err := rows.Scan(&p.UserID, &p.QuestionID, &p.Completed, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			p.CompletedAt = &t
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// UpsertProgress inserts or updates a progress row.
func (s *SQLiteStorage) UpsertProgress(ctx context.Context, p *models.Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, question_id, completed, completed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, question_id) DO UPDATE SET completed = excluded.completed, completed_at = excluded.completed_at`,
		p.UserID, p.QuestionID, p.Completed, nullTime(p.CompletedAt))
	return err
}

// GetProfile returns a profile by ID.
func (s *SQLiteStorage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, username, avatar_url, created_at, updated_at FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Email, &p.FullName, &p.Username, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile inserts or replaces a profile.
func (s *SQLiteStorage) UpsertProfile(ctx context.Context, p *models.Profile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, full_name, username, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET email = excluded.email, full_name = excluded.full_name,
		 username = excluded.username, avatar_url = excluded.avatar_url, updated_at = excluded.updated_at`,
		p.ID, p.Email, p.FullName, p.Username, p.AvatarURL, p.CreatedAt, p.UpdatedAt)
	return err
}

// CountNotes returns the total number of notes.
func (s *SQLiteStorage) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

// CountQuestions returns the total number of questions.
func (s *SQLiteStorage) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func stampNew(note *models.Note) {
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	note.Normalize()
}

func encodeLists(note *models.Note) (string, string, error) {
	note.Normalize()
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	links, err := json.Marshal(note.Links)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal links: %w", err)
	}
	return string(tags), string(links), nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
