// Package localstore keeps practice events in a local SQLite file for offline use.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultHistoryLimit is used when a history query asks for a non-positive limit.
const DefaultHistoryLimit = 20

// Store wraps SQLite access for practice events.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS voice_feedback (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			emotion TEXT NOT NULL,
			pitch REAL NOT NULL,
			energy REAL NOT NULL,
			tempo REAL NOT NULL,
			suggestions TEXT NOT NULL,
			audio_file_name TEXT NOT NULL,
			feedback TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS coding_submissions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			code TEXT NOT NULL,
			language TEXT NOT NULL,
			output TEXT NOT NULL,
			passed INTEGER NOT NULL,
			suggestions TEXT NOT NULL,
			submitted_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS resume_uploads (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			resume_text TEXT NOT NULL,
			job_desc_text TEXT NOT NULL,
			uploaded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS resume_analyses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			resume_id TEXT NOT NULL,
			match_score REAL,
			analyzed_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS feedback_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			context TEXT NOT NULL,
			match_score REAL,
			missing_keywords TEXT NOT NULL,
			sentiment TEXT,
			emotion TEXT NOT NULL,
			filler_words TEXT,
			keywords_matched TEXT NOT NULL,
			suggestions TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS coding_questions (
			id TEXT PRIMARY KEY,
			section TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			starter_code TEXT NOT NULL,
			test_cases TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tech_questions (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			topic TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_voice_feedback_user ON voice_feedback(user_id, recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_coding_submissions_user ON coding_submissions(user_id, submitted_at);`,
		`CREATE INDEX IF NOT EXISTS idx_resume_uploads_user ON resume_uploads(user_id, uploaded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_resume_analyses_user ON resume_analyses(user_id, analyzed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_records_user ON feedback_records(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_coding_questions_section ON coding_questions(section, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_tech_questions_topic ON tech_questions(topic, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func stamp(id *uuid.UUID, at *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if at.IsZero() {
		*at = time.Now().UTC()
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored time %q: %w", s, err)
	}
	return t, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("invalid stored list: %w", err)
	}
	return out, nil
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close sqlite rows", "error", err)
	}
}
