package localstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodingQuestions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := &types.CodingQuestion{
		Section: types.SectionPython, Title: "Reverse", Description: "Reverse a string.",
		TestCases: []types.TestCase{{Input: "abc", ExpectedOutput: "cba"}}, CreatedAt: minute(0),
	}
	second := &types.CodingQuestion{Section: types.SectionPython, Title: "Sum", Description: "Add.", CreatedAt: minute(1)}
	other := &types.CodingQuestion{Section: types.SectionMySQL, Title: "Join", Description: "Join tables.", CreatedAt: minute(2)}
	for _, q := range []*types.CodingQuestion{second, first, other} {
		require.NoError(t, s.CreateCodingQuestion(ctx, q))
		assert.NotEqual(t, uuid.Nil, q.ID)
	}

	python, err := s.ListCodingQuestions(ctx, types.SectionPython)
	require.NoError(t, err)
	require.Len(t, python, 2)
	assert.Equal(t, "Reverse", python[0].Title)
	assert.Equal(t, []types.TestCase{{Input: "abc", ExpectedOutput: "cba"}}, python[0].TestCases)
	assert.NotNil(t, python[1].TestCases)
	assert.Empty(t, python[1].TestCases)

	all, err := s.ListCodingQuestions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.ListCodingQuestions(ctx, types.SectionReact)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	got, err := s.GetCodingQuestion(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Description, got.Description)
	assert.Equal(t, minute(0), got.CreatedAt)

	_, err = s.GetCodingQuestion(ctx, uuid.New())
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestTechQuestions_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, q := range []string{"What is a goroutine?", "What is a channel?", "What is a JOIN?"} {
		topic := "go"
		if i == 2 {
			topic = "sql"
		}
		require.NoError(t, s.CreateTechQuestion(ctx, &types.TechQuestion{
			Question: q, Topic: topic, Difficulty: types.DefaultTechDifficulty, CreatedAt: minute(i),
		}))
	}

	golang, err := s.ListTechQuestions(ctx, "go")
	require.NoError(t, err)
	require.Len(t, golang, 2)
	assert.Equal(t, "What is a channel?", golang[0].Question)
	assert.Equal(t, "What is a goroutine?", golang[1].Question)

	all, err := s.ListTechQuestions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "What is a JOIN?", all[0].Question)
}
