package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCodingQuestionRequest_Validation(t *testing.T) {
	valid := CodingQuestionInput{Section: SectionPython, Title: "Two sum", Description: "Find two numbers."}

	tests := []struct {
		name    string
		input   func(CodingQuestionInput) CodingQuestionInput
		wantErr string
	}{
		{
			name:  "valid",
			input: func(in CodingQuestionInput) CodingQuestionInput { return in },
		},
		{
			name: "unknown section",
			input: func(in CodingQuestionInput) CodingQuestionInput {
				in.Section = "cobol"
				return in
			},
			wantErr: "oneof",
		},
		{
			name: "missing title",
			input: func(in CodingQuestionInput) CodingQuestionInput {
				in.Title = ""
				return in
			},
			wantErr: "Title",
		},
		{
			name: "missing description",
			input: func(in CodingQuestionInput) CodingQuestionInput {
				in.Description = ""
				return in
			},
			wantErr: "Description",
		},
		{
			name: "oversized expected output",
			input: func(in CodingQuestionInput) CodingQuestionInput {
				in.TestCases = []TestCaseInput{{ExpectedOutput: strings.Repeat("x", 10001)}}
				return in
			},
			wantErr: "ExpectedOutput",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SaveCodingQuestionRequest{Question: tt.input(valid)}
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveTechQuestionRequest_Validation(t *testing.T) {
	assert.NoError(t, (&SaveTechQuestionRequest{Question: "What is a goroutine?", Topic: "go"}).Validate())

	err := (&SaveTechQuestionRequest{Topic: "go"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Question")
}

func TestCodingQuestionInput_CodingQuestion(t *testing.T) {
	in := CodingQuestionInput{
		Section:     SectionMySQL,
		Title:       "Top earners",
		Description: "Select the top three salaries.",
		TestCases:   []TestCaseInput{{Input: "", ExpectedOutput: "300\n200\n100"}},
		Difficulty:  "medium",
	}

	q := in.CodingQuestion()
	assert.Equal(t, SectionMySQL, q.Section)
	assert.Equal(t, []TestCase{{ExpectedOutput: "300\n200\n100"}}, q.TestCases)

	assert.NotNil(t, CodingQuestionInput{}.CodingQuestion().TestCases, "no test cases encodes as []")
}
