package db

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_events", migrations[0].Name)
	for _, table := range []string{"voice_feedback", "coding_submissions", "resume_uploads", "resume_analyses", "feedback_records"} {
		assert.True(t, strings.Contains(migrations[0].SQL, "CREATE TABLE IF NOT EXISTS "+table), table)
	}

	require.Len(t, migrations, 2)
	assert.Equal(t, "002_question_banks", migrations[1].Name)
	for _, table := range []string{"coding_questions", "tech_questions"} {
		assert.True(t, strings.Contains(migrations[1].SQL, "CREATE TABLE IF NOT EXISTS "+table), table)
	}

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Name, migrations[i].Name)
	}
}

func TestStamp(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		var id uuid.UUID
		var at time.Time
		stamp(&id, &at)
		assert.NotEqual(t, uuid.Nil, id)
		assert.False(t, at.IsZero())
		assert.Equal(t, time.UTC, at.Location())
	})

	t.Run("keeps caller values", func(t *testing.T) {
		id := uuid.New()
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		stamp(&id, &at)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), at)
	})
}

func TestHistoryLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, historyLimit(0))
	assert.Equal(t, DefaultHistoryLimit, historyLimit(-4))
	assert.Equal(t, 5, historyLimit(5))
}

func TestTextArrayAndJSONValue(t *testing.T) {
	assert.NotNil(t, textArray(nil))
	assert.Equal(t, []string{"a"}, textArray([]string{"a"}))
	assert.Nil(t, jsonValue(nil))
	assert.Nil(t, jsonValue([]byte{}))
	assert.Equal(t, []byte("0.4"), jsonValue([]byte("0.4")))
}
