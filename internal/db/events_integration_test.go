//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Skipf("database unreachable, skipping integration test: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func cleanupUser(t *testing.T, db *DB, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	for _, table := range []string{"voice_feedback", "coding_submissions", "resume_uploads", "resume_analyses", "feedback_records"} {
		_, _ = db.pool.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", userID)
	}
}

func TestIntegration_Migrate_Idempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	require.NoError(t, db.Migrate(context.Background()))
}

func TestIntegration_VoiceFeedback(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, s := range []string{"first", "second", "third"} {
		v := &types.VoiceFeedback{UserID: userID, Timestamp: base.Add(time.Duration(i) * time.Minute), Suggestions: []string{s}}
		require.NoError(t, db.CreateVoiceFeedback(ctx, v))
		assert.NotEqual(t, uuid.Nil, v.ID)
	}

	all, err := db.ListVoiceFeedback(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"first"}, all[0].Suggestions)

	recent, err := db.VoiceFeedbackHistory(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, []string{"third"}, recent[0].Suggestions)

	require.NoError(t, db.DeleteVoiceFeedback(ctx, userID, all[0].ID))
	err = db.DeleteVoiceFeedback(ctx, userID, all[0].ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	// Another user's delete must not touch this user's rows.
	err = db.DeleteVoiceFeedback(ctx, uuid.New(), all[1].ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestIntegration_CodingSubmissions(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	s := &types.CodingSubmission{UserID: userID, QuestionID: "two-sum", Code: "print(1)", Language: "python", Passed: true}
	require.NoError(t, db.CreateCodingSubmission(ctx, s))

	list, err := db.ListCodingSubmissions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Passed)
	assert.Empty(t, list[0].Suggestions)

	require.NoError(t, db.DeleteCodingSubmission(ctx, userID, s.ID))
	history, err := db.CodingSubmissionHistory(ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestIntegration_Resumes(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	latest, err := db.LatestResumeUpload(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	u := &types.ResumeUpload{UserID: userID, ResumeText: "go kubernetes", JobDescText: "go engineer"}
	require.NoError(t, db.CreateResumeUpload(ctx, u))

	latest, err = db.LatestResumeUpload(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, u.ID, latest.ID)

	score := 50.0
	require.NoError(t, db.CreateResumeAnalysis(ctx, &types.ResumeAnalysis{UserID: userID, ResumeID: u.ID, MatchScore: &score}))
	require.NoError(t, db.CreateResumeAnalysis(ctx, &types.ResumeAnalysis{UserID: userID, ResumeID: u.ID}))

	analyses, err := db.ListResumeAnalyses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	require.NotNil(t, analyses[0].MatchScore)
	assert.Equal(t, 50.0, *analyses[0].MatchScore)
	assert.Nil(t, analyses[1].MatchScore)
}

func TestIntegration_FeedbackRecords_FlexValues(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	require.NoError(t, db.CreateFeedbackRecord(ctx, &types.FeedbackRecord{
		UserID: userID, Context: types.ContextVoice, Sentiment: types.NumberValue(0.7), FillerWords: types.NumberValue(3),
	}))
	require.NoError(t, db.CreateFeedbackRecord(ctx, &types.FeedbackRecord{
		UserID: userID, Context: types.ContextVoice, Sentiment: types.StringValue("positive"),
	}))

	records, err := db.ListFeedbackRecords(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	n, ok := records[0].Sentiment.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 0.7, n)

	label, ok := records[1].Sentiment.AsString()
	assert.True(t, ok)
	assert.Equal(t, "positive", label)
	assert.True(t, records[1].FillerWords.IsNull())
}

func TestIntegration_FeedbackRecords_EqualTimestampsOrderByID(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	at := time.Now().UTC().Truncate(time.Millisecond)
	for range 3 {
		require.NoError(t, db.CreateFeedbackRecord(ctx, &types.FeedbackRecord{UserID: userID, CreatedAt: at}))
	}

	first, err := db.ListFeedbackRecords(ctx, userID)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID.String(), first[i].ID.String())
	}

	again, err := db.ListFeedbackRecords(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestIntegration_QuestionBanks(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	section := types.SectionReact
	q := &types.CodingQuestion{
		Section: section, Title: "Counter", Description: "Build a counter.",
		TestCases: []types.TestCase{{Input: "click", ExpectedOutput: "1"}},
	}
	require.NoError(t, db.CreateCodingQuestion(ctx, q))
	defer func() { _, _ = db.pool.Exec(ctx, "DELETE FROM coding_questions WHERE id = $1", q.ID) }()

	got, err := db.GetCodingQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.TestCases, got.TestCases)

	list, err := db.ListCodingQuestions(ctx, section)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	_, err = db.GetCodingQuestion(ctx, uuid.New())
	assert.True(t, errors.Is(err, types.ErrNotFound))

	topic := "topic-" + uuid.NewString()
	older := &types.TechQuestion{Question: "older", Topic: topic, CreatedAt: time.Now().UTC().Add(-time.Minute)}
	newer := &types.TechQuestion{Question: "newer", Topic: topic}
	require.NoError(t, db.CreateTechQuestion(ctx, older))
	require.NoError(t, db.CreateTechQuestion(ctx, newer))
	defer func() { _, _ = db.pool.Exec(ctx, "DELETE FROM tech_questions WHERE topic = $1", topic) }()

	tech, err := db.ListTechQuestions(ctx, topic)
	require.NoError(t, err)
	require.Len(t, tech, 2)
	assert.Equal(t, "newer", tech[0].Question)
}
