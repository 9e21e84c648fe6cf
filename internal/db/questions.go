package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-coach/internal/types"
)

// -----------------------------------------------------------------------------
// Coding Question Methods
// -----------------------------------------------------------------------------

const codingQuestionColumns = `id, section, title, description, starter_code, test_cases, difficulty, created_at`

// CreateCodingQuestion adds a question to the coding bank
func (db *DB) CreateCodingQuestion(ctx context.Context, q *types.CodingQuestion) error {
	stamp(&q.ID, &q.CreatedAt)
	if q.TestCases == nil {
		q.TestCases = []types.TestCase{}
	}
	cases, err := json.Marshal(q.TestCases)
	if err != nil {
		return fmt.Errorf("failed to encode test cases: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO coding_questions (`+codingQuestionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, q.Section, q.Title, q.Description, q.StarterCode, cases, q.Difficulty, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coding question: %w", err)
	}
	return nil
}

// ListCodingQuestions returns the questions of a section in insertion order.
// An empty section lists the whole bank.
func (db *DB) ListCodingQuestions(ctx context.Context, section string) ([]types.CodingQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+codingQuestionColumns+`
		 FROM coding_questions WHERE ($1 = '' OR section = $1) ORDER BY created_at ASC, id ASC`,
		section,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding questions: %w", err)
	}
	defer rows.Close()

	out := []types.CodingQuestion{}
	for rows.Next() {
		q, err := scanCodingQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coding questions: %w", err)
	}
	return out, nil
}

// GetCodingQuestion returns one question of the coding bank
func (db *DB) GetCodingQuestion(ctx context.Context, id uuid.UUID) (*types.CodingQuestion, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+codingQuestionColumns+` FROM coding_questions WHERE id = $1`, id)
	q, err := scanCodingQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("coding question %s: %w", id, types.ErrNotFound)
	}
	return q, err
}

func scanCodingQuestion(row pgx.Row) (*types.CodingQuestion, error) {
	var q types.CodingQuestion
	var cases []byte
	if err := row.Scan(&q.ID, &q.Section, &q.Title, &q.Description, &q.StarterCode,
		&cases, &q.Difficulty, &q.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan coding question: %w", err)
	}
	q.TestCases = []types.TestCase{}
	if err := json.Unmarshal(cases, &q.TestCases); err != nil {
		return nil, fmt.Errorf("failed to decode test cases: %w", err)
	}
	return &q, nil
}

// -----------------------------------------------------------------------------
// Tech Question Methods
// -----------------------------------------------------------------------------

// CreateTechQuestion adds a question to the tech bank
func (db *DB) CreateTechQuestion(ctx context.Context, q *types.TechQuestion) error {
	stamp(&q.ID, &q.CreatedAt)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO tech_questions (id, question, topic, difficulty, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.Question, q.Topic, q.Difficulty, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tech question: %w", err)
	}
	return nil
}

// ListTechQuestions returns the questions of a topic, newest first. An empty
// topic lists the whole bank.
func (db *DB) ListTechQuestions(ctx context.Context, topic string) ([]types.TechQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, question, topic, difficulty, created_at
		 FROM tech_questions WHERE ($1 = '' OR topic = $1) ORDER BY created_at DESC, id DESC`,
		topic,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tech questions: %w", err)
	}
	defer rows.Close()

	out := []types.TechQuestion{}
	for rows.Next() {
		var q types.TechQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.Topic, &q.Difficulty, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tech question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tech questions: %w", err)
	}
	return out, nil
}
