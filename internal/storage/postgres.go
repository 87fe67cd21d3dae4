package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/hyperjump/notegraph/internal/models"
)

// PostgresStorage implements Storage on a PostgreSQL database laid out like
// the hosted backend: notes, questions, user_progress and profiles tables.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage connects to dsn, verifies the connection and creates missing tables.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := initPostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &PostgresStorage{db: db}, nil
}

func initPostgresSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		folder TEXT NOT NULL,
		status TEXT NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		links TEXT[] NOT NULL DEFAULT '{}',
		ai_generated BOOLEAN NOT NULL DEFAULT FALSE,
		source_api TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_notes_user_updated ON notes(user_id, updated_at DESC);

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

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id TEXT NOT NULL,
		question_id INTEGER NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		PRIMARY KEY (user_id, question_id)
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func pgPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// CreateNote inserts a note. Zero timestamps are set to now.
func (s *PostgresStorage) CreateNote(ctx context.Context, note *models.Note) error {
	stampNew(note)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		note.ID, note.UserID, note.Title, note.Content, note.Folder, string(note.Status),
		pq.Array(note.Tags), pq.Array(note.Links), note.AIGenerated, nullString(note.SourceAPI),
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote returns a note by ID.
func (s *PostgresStorage) GetNote(ctx context.Context, id string) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	note, err := scanPostgresNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return note, err
}

// UpdateNote replaces an existing note.
func (s *PostgresStorage) UpdateNote(ctx context.Context, note *models.Note) error {
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now()
	}
	note.Normalize()
	result, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = $1, content = $2, folder = $3, status = $4, tags = $5, links = $6,
		 ai_generated = $7, source_api = $8, updated_at = $9
		 WHERE id = $10`,
		note.Title, note.Content, note.Folder, string(note.Status), pq.Array(note.Tags), pq.Array(note.Links),
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
func (s *PostgresStorage) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}

// ListNotes returns a user's notes, most recently updated first.
func (s *PostgresStorage) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = $1 ORDER BY updated_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note, err := scanPostgresNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanPostgresNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var status string
	var sourceAPI sql.NullString
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Folder, &status,
		pq.Array(&note.Tags), pq.Array(&note.Links), &note.AIGenerated, &sourceAPI,
		&note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	note.Status = models.Status(status)
	if sourceAPI.Valid {
		note.SourceAPI = &sourceAPI.String
	}
	note.Normalize()
	return &note, nil
}

// ListQuestions returns questions matching filter ordered by week and number.
func (s *PostgresStorage) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	where, args := questionWhere(filter, pgPlaceholder)
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
func (s *PostgresStorage) ReplaceQuestions(ctx context.Context, questions []models.Question) error {
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
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
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
func (s *PostgresStorage) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, question_id, completed, completed_at FROM user_progress
		 WHERE user_id = $1 ORDER BY question_id`, userID)
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
func (s *PostgresStorage) UpsertProgress(ctx context.Context, p *models.Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, question_id, completed, completed_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, question_id) DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at`,
		p.UserID, p.QuestionID, p.Completed, nullTime(p.CompletedAt))
	return err
}

// GetProfile returns a profile by ID.
func (s *PostgresStorage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, username, avatar_url, created_at, updated_at FROM profiles WHERE id = $1`, id,
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
func (s *PostgresStorage) UpsertProfile(ctx context.Context, p *models.Profile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, full_name, username, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, full_name = EXCLUDED.full_name,
		 username = EXCLUDED.username, avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at`,
		p.ID, p.Email, p.FullName, p.Username, p.AvatarURL, p.CreatedAt, p.UpdatedAt)
	return err
}

// CountNotes returns the total number of notes.
func (s *PostgresStorage) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

// CountQuestions returns the total number of questions.
func (s *PostgresStorage) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
