package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/astroidz/internal/leaderboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func rec(name string, score int) leaderboard.ScoreRecord {
	return leaderboard.ScoreRecord{Name: name, Score: score, Time: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should be created in nested directory")
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.astroidz/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".astroidz", "scores.db"))
	assert.NoError(t, err)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, r := range []leaderboard.ScoreRecord{rec("ACE", 100), rec("BOB", 50), rec("CAT", 200)} {
		_, err := store.SaveScore(ctx, "asteroids", r)
		require.NoError(t, err)
	}
	_, err := store.SaveScore(ctx, "other", rec("DOG", 500))
	require.NoError(t, err)

	scores, err := store.TopScores(ctx, "asteroids", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, "CAT", scores[0].Name)
	assert.Equal(t, 200, scores[0].Score)
	assert.Equal(t, 100, scores[1].Score)
	assert.Equal(t, 50, scores[2].Score)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), scores[0].Time.UTC())
}

func TestStoreTiesInSubmissionOrder(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, name := range []string{"FIRST", "SECOND", "THIRD"} {
		_, err := store.SaveScore(ctx, "asteroids", rec(name, 700))
		require.NoError(t, err)
	}

	scores, err := store.TopScores(ctx, "asteroids", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "FIRST", scores[0].Name)
	assert.Equal(t, "SECOND", scores[1].Name)
	assert.Equal(t, "THIRD", scores[2].Name)
}

func TestStoreTopScoresLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := range 20 {
		_, err := store.SaveScore(ctx, "asteroids", rec("P", i*10))
		require.NoError(t, err)
	}

	scores, err := store.TopScores(ctx, "asteroids", 5)
	require.NoError(t, err)
	require.Len(t, scores, 5)
	assert.Equal(t, 190, scores[0].Score)

	scores, err = store.TopScores(ctx, "asteroids", 0)
	require.NoError(t, err)
	assert.Len(t, scores, leaderboard.DefaultSize, "non-positive limit falls back to the board size")
}

func TestStoreTrimScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := range 15 {
		_, err := store.SaveScore(ctx, "asteroids", rec("P", i))
		require.NoError(t, err)
	}
	_, err := store.SaveScore(ctx, "other", rec("KEEP", 1))
	require.NoError(t, err)

	require.NoError(t, store.TrimScores(ctx, "asteroids", 10))

	scores, err := store.TopScores(ctx, "asteroids", 100)
	require.NoError(t, err)
	require.Len(t, scores, 10)
	assert.Equal(t, 5, scores[9].Score)

	other, err := store.TopScores(ctx, "other", 100)
	require.NoError(t, err)
	assert.Len(t, other, 1, "trimming one game must not touch another")
}

func TestStoreClearScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.SaveScore(ctx, "asteroids", rec("P", 100))
	require.NoError(t, err)
	require.NoError(t, store.ClearScores(ctx, "asteroids"))

	scores, err := store.TopScores(ctx, "asteroids", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestStoreGameStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	stats, err := store.GetGameStats(ctx, "asteroids")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
	assert.True(t, stats.LastPlayed.IsZero())

	for _, s := range []int{100, 300} {
		_, err := store.SaveScore(ctx, "asteroids", rec("P", s))
		require.NoError(t, err)
	}

	stats, err = store.GetGameStats(ctx, "asteroids")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200.0, stats.AvgScore, 1e-9)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestStoreBacksBoard(t *testing.T) {
	ctx := context.Background()
	board := leaderboard.New(openTestStore(t))

	for i := range 12 {
		_, err := board.Submit(ctx, "pilot", i*100)
		require.NoError(t, err)
	}

	top, err := board.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 10)
	assert.Equal(t, "PILOT", top[0].Name)
	assert.Equal(t, 1100, top[0].Score)
	assert.Equal(t, 200, top[9].Score)

	_, err = board.Submit(ctx, "  ", 5000)
	assert.ErrorIs(t, err, leaderboard.ErrEmptyName)
}
