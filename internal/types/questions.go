package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Coding question sections
const (
	SectionPython = "python"
	SectionReact  = "react"
	SectionMySQL  = "mysql"
)

// DefaultTechDifficulty labels tech questions saved without a difficulty.
const DefaultTechDifficulty = "ai"

// TestCase is one stdin and expected stdout pair of a coding question.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// CodingQuestion is an entry of the shared coding-round question bank.
type CodingQuestion struct {
	ID          uuid.UUID  `json:"id"`
	Section     string     `json:"section"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StarterCode string     `json:"starter_code"`
	TestCases   []TestCase `json:"test_cases"`
	Difficulty  string     `json:"difficulty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TechQuestion is an entry of the shared technical-interview question bank.
type TechQuestion struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TestCaseInput is a test case as sent by clients.
type TestCaseInput struct {
	Input          string `json:"input" validate:"max=10000"`
	ExpectedOutput string `json:"expectedOutput" validate:"max=10000"`
}

// CodingQuestionInput is a coding question as sent by clients.
type CodingQuestionInput struct {
	Section     string          `json:"section" validate:"required,oneof=python react mysql"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=10000"`
	StarterCode string          `json:"starterCode" validate:"max=10000"`
	TestCases   []TestCaseInput `json:"testCases" validate:"max=50,dive"`
	Difficulty  string          `json:"difficulty" validate:"max=32"`
}

// SaveCodingQuestionRequest adds a question to the coding bank.
type SaveCodingQuestionRequest struct {
	Question CodingQuestionInput `json:"question"`
}

// SaveTechQuestionRequest adds a question to the tech bank.
type SaveTechQuestionRequest struct {
	Question   string `json:"question" validate:"required,max=4000"`
	Topic      string `json:"topic" validate:"max=64"`
	Difficulty string `json:"difficulty" validate:"max=32"`
}

// Validate validates the SaveCodingQuestionRequest using the validator.
func (r *SaveCodingQuestionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveTechQuestionRequest using the validator.
func (r *SaveTechQuestionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CodingQuestion converts the input into a bank entry.
func (in CodingQuestionInput) CodingQuestion() *CodingQuestion {
	cases := make([]TestCase, 0, len(in.TestCases))
	for _, tc := range in.TestCases {
		cases = append(cases, TestCase{Input: tc.Input, ExpectedOutput: tc.ExpectedOutput})
	}
	return &CodingQuestion{
		Section:     in.Section,
		Title:       in.Title,
		Description: in.Description,
		StarterCode: in.StarterCode,
		TestCases:   cases,
		Difficulty:  in.Difficulty,
	}
}
