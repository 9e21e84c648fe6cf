package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
)

const codingQuestionColumns = `id, section, title, description, starter_code, test_cases, difficulty, created_at`

// CreateCodingQuestion adds a question to the coding bank.
func (s *Store) CreateCodingQuestion(ctx context.Context, q *types.CodingQuestion) error {
	stamp(&q.ID, &q.CreatedAt)
	if q.TestCases == nil {
		q.TestCases = []types.TestCase{}
	}
	cases, err := json.Marshal(q.TestCases)
	if err != nil {
		return fmt.Errorf("failed to encode test cases: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO coding_questions (`+codingQuestionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID.String(), q.Section, q.Title, q.Description, q.StarterCode, string(cases), q.Difficulty,
		formatTime(q.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create coding question: %w", err)
	}
	return nil
}

// ListCodingQuestions returns the questions of a section in insertion order.
// An empty section lists the whole bank.
func (s *Store) ListCodingQuestions(ctx context.Context, section string) ([]types.CodingQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+codingQuestionColumns+`
		 FROM coding_questions WHERE (? = '' OR section = ?) ORDER BY created_at ASC, id ASC`,
		section, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding questions: %w", err)
	}
	defer closeRows(rows)

	out := []types.CodingQuestion{}
	for rows.Next() {
		q, err := scanCodingQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// GetCodingQuestion returns one question of the coding bank.
func (s *Store) GetCodingQuestion(ctx context.Context, id uuid.UUID) (*types.CodingQuestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+codingQuestionColumns+` FROM coding_questions WHERE id = ?`, id.String())
	q, err := scanCodingQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coding question %s: %w", id, types.ErrNotFound)
	}
	return q, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCodingQuestion(row scanner) (*types.CodingQuestion, error) {
	var q types.CodingQuestion
	var id, cases, at string
	if err := row.Scan(&id, &q.Section, &q.Title, &q.Description, &q.StarterCode,
		&cases, &q.Difficulty, &at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan coding question: %w", err)
	}
	var err error
	if q.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid stored id: %w", err)
	}
	if q.CreatedAt, err = parseTime(at); err != nil {
		return nil, err
	}
	q.TestCases = []types.TestCase{}
	if err := json.Unmarshal([]byte(cases), &q.TestCases); err != nil {
		return nil, fmt.Errorf("invalid stored test cases: %w", err)
	}
	return &q, nil
}

// CreateTechQuestion adds a question to the tech bank.
func (s *Store) CreateTechQuestion(ctx context.Context, q *types.TechQuestion) error {
	stamp(&q.ID, &q.CreatedAt)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tech_questions (id, question, topic, difficulty, created_at) VALUES (?, ?, ?, ?, ?)`,
		q.ID.String(), q.Question, q.Topic, q.Difficulty, formatTime(q.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create tech question: %w", err)
	}
	return nil
}

// ListTechQuestions returns the questions of a topic, newest first. An empty
// topic lists the whole bank.
func (s *Store) ListTechQuestions(ctx context.Context, topic string) ([]types.TechQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, topic, difficulty, created_at
		 FROM tech_questions WHERE (? = '' OR topic = ?) ORDER BY created_at DESC, id DESC`,
		topic, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to list tech questions: %w", err)
	}
	defer closeRows(rows)

	out := []types.TechQuestion{}
	for rows.Next() {
		var q types.TechQuestion
		var id, at string
		if err := rows.Scan(&id, &q.Question, &q.Topic, &q.Difficulty, &at); err != nil {
			return nil, fmt.Errorf("failed to scan tech question: %w", err)
		}
		if q.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid stored id: %w", err)
		}
		if q.CreatedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
