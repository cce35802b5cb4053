package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ravichandra178/mynitrends/internal/generation"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendA = "5a1f3c8e-0d2b-4e6f-8a9c-1b2d3e4f5a6b"

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostGenerate_StoresPostAndMarksTrendUsedInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	posts := newFakePostRepo()
	trends := newFakeTrendRepo(&models.Trend{ID: trendA, Topic: "AI in Healthcare"})
	gen := &fakeGenerator{draft: generation.PostDraft{Content: "AI is changing care.", Source: "GROQ"}}
	svc := NewPostService(db, posts, trends, &fakeHistoryRepo{}, gen)

	post, err := svc.Generate(context.Background(), trendA, "AI in Healthcare")
	require.NoError(t, err)

	assert.Equal(t, "AI is changing care.", post.Content)
	require.NotNil(t, post.TrendID)
	assert.Equal(t, trendA, *post.TrendID)
	assert.Nil(t, post.ImageURL)
	assert.True(t, posts.createdInTx)
	assert.Equal(t, []string{trendA}, trends.usedIDs)
	assert.True(t, trends.usedInTx)
	assert.True(t, trends.trends[trendA].Used)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGenerate_FallbackContentStillPersisted(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	posts := newFakePostRepo()
	gen := &fakeGenerator{draft: generation.PostDraft{Content: generation.FallbackPost("AI in Healthcare"), Source: "fallback"}}
	svc := NewPostService(db, posts, newFakeTrendRepo(), &fakeHistoryRepo{}, gen)

	post, err := svc.Generate(context.Background(), "", "AI in Healthcare")
	require.NoError(t, err)

	assert.Equal(t, "Check out our latest insights on AI in Healthcare! 🚀 Stay tuned for more updates.", post.Content)
	assert.Nil(t, post.TrendID)
	assert.Len(t, posts.created, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGenerate_TopicFromTrend(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	gen := &fakeGenerator{draft: generation.PostDraft{Content: "text"}}
	trends := newFakeTrendRepo(&models.Trend{ID: trendA, Topic: "Digital Nomad Life"})
	svc := NewPostService(db, newFakePostRepo(), trends, &fakeHistoryRepo{}, gen)

	_, err := svc.Generate(context.Background(), trendA, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Digital Nomad Life"}, gen.topics)
}

func TestPostGenerate_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	posts := newFakePostRepo()
	posts.createErr = errBoom
	trends := newFakeTrendRepo()
	svc := NewPostService(db, posts, trends, &fakeHistoryRepo{}, &fakeGenerator{draft: generation.PostDraft{Content: "x"}})

	_, err := svc.Generate(context.Background(), trendA, "topic")
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, trends.usedIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGenerate_MissingTopic(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewPostService(db, newFakePostRepo(), newFakeTrendRepo(), &fakeHistoryRepo{}, &fakeGenerator{})

	_, err := svc.Generate(context.Background(), "", " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Generate(context.Background(), trendA, "")
	assert.ErrorIs(t, err, ErrTrendNotFound)
}

func TestPostUpdate_ContentOnlyKeepsSchedule(t *testing.T) {
	db, _ := setupMockDB(t)
	at := mustTime(t, "2026-06-01T10:00:00Z")
	posts := newFakePostRepo(&models.Post{ID: postA, Content: "old", ScheduledTime: &at})
	svc := NewPostService(db, posts, newFakeTrendRepo(), &fakeHistoryRepo{}, &fakeGenerator{})

	post, err := svc.Update(context.Background(), postA, models.PostUpdate{Content: ptr("new text")})
	require.NoError(t, err)

	assert.Equal(t, "new text", post.Content)
	require.NotNil(t, post.ScheduledTime)
	assert.True(t, at.Equal(*post.ScheduledTime))
}

func TestPostUpdate_Errors(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewPostService(db, newFakePostRepo(), newFakeTrendRepo(), &fakeHistoryRepo{}, &fakeGenerator{})

	_, err := svc.Update(context.Background(), "nope", models.PostUpdate{Content: ptr("x")})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Update(context.Background(), postA, models.PostUpdate{Content: ptr("x")})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Update(context.Background(), postA, models.PostUpdate{Content: ptr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostRemove(t *testing.T) {
	db, _ := setupMockDB(t)
	posts := newFakePostRepo(&models.Post{ID: postA, Content: "bye"})
	svc := NewPostService(db, posts, newFakeTrendRepo(), &fakeHistoryRepo{}, &fakeGenerator{})

	require.NoError(t, svc.Remove(context.Background(), postA))
	assert.Equal(t, []string{postA}, posts.removed)
	assert.ErrorIs(t, svc.Remove(context.Background(), postA), ErrPostNotFound)
}

func TestPostHistory(t *testing.T) {
	db, _ := setupMockDB(t)
	posts := newFakePostRepo(&models.Post{ID: postA, Content: "hi"})
	history := &fakeHistoryRepo{rows: []*models.PostingHistory{
		{PostID: postA, ErrorMessage: "boom"},
		{PostID: trendA},
	}}
	svc := NewPostService(db, posts, newFakeTrendRepo(), history, &fakeGenerator{})

	rows, err := svc.History(context.Background(), postA)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "boom", rows[0].ErrorMessage)

	_, err = svc.History(context.Background(), trendA)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.History(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}
