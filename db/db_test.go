package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleRun(id string) *types.AnalysisRun {
	published := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	return &types.AnalysisRun{
		ID:        id,
		VideoID:   "dQw4w9WgXcQ",
		Source:    "data-api",
		FetchedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		Comments: []types.ClassifiedComment{
			{
				NormalizedComment: types.NormalizedComment{
					Comment:   types.Comment{ID: "c1", Author: "alice", Text: "Loved it!", PublishedAt: published, LikeCount: 4},
					CleanText: "loved",
				},
				Label: types.LabelPositive,
				Score: 0.95,
			},
			{
				NormalizedComment: types.NormalizedComment{
					Comment: types.Comment{ID: "c2", Author: "bob", Text: "???"},
				},
				Label: types.LabelUnknown,
			},
		},
		Summary: types.SentimentSummary{
			Total:       1,
			Counts:      map[types.Label]int{types.LabelPositive: 1, types.LabelNegative: 0, types.LabelNeutral: 0},
			Percentages: map[types.Label]float64{types.LabelPositive: 100, types.LabelNegative: 0, types.LabelNeutral: 0},
		},
		Digest: &types.Digest{Summary: "Viewers loved it.", Source: types.DigestSourceRemote},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	run := sampleRun("run-1")
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.VideoID, got.VideoID)
	assert.Equal(t, run.Source, got.Source)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "c1", got.Comments[0].ID)
	assert.Equal(t, types.LabelPositive, got.Comments[0].Label)
	assert.InDelta(t, 0.95, got.Comments[0].Score, 1e-9)
	assert.True(t, got.Comments[1].PublishedAt.IsZero())
	assert.Equal(t, 1, got.Summary.Counts[types.LabelPositive])
	require.NotNil(t, got.Digest)
	assert.Equal(t, types.DigestSourceRemote, got.Digest.Source)
}

func TestGetRunNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunWithoutDigest(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	run := sampleRun("run-nodigest")
	run.Digest = nil
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-nodigest")
	require.NoError(t, err)
	assert.Nil(t, got.Digest)
}

func TestListRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := sampleRun("run-old")
	first.FetchedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRun(ctx, first))

	second := sampleRun("run-new")
	second.FetchedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRun(ctx, second))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, 2, runs[0].CommentCount)
}

func TestDeleteRunCascades(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, sampleRun("run-del")))
	require.NoError(t, store.DeleteRun(ctx, "run-del"))

	_, err := store.GetRun(ctx, "run-del")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteRun(ctx, "run-del"), ErrNotFound)
}

func TestWatchedVideos(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddWatchedVideo(ctx, "vid-1"))
	require.NoError(t, store.AddWatchedVideo(ctx, "vid-1"), "duplicate add is a no-op")
	require.NoError(t, store.AddWatchedVideo(ctx, "vid-2"))

	watched, err := store.ListWatchedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, watched, 2)
	assert.Equal(t, "vid-1", watched[0].VideoID)
	assert.Empty(t, watched[0].LastRunID)

	require.NoError(t, store.TouchWatchedVideo(ctx, "vid-1", "run-9"))

	watched, err = store.ListWatchedVideos(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-9", watched[0].LastRunID)
	assert.NotNil(t, watched[0].LastAnalyzedAt)

	require.NoError(t, store.RemoveWatchedVideo(ctx, "vid-2"))
	assert.ErrorIs(t, store.RemoveWatchedVideo(ctx, "vid-2"), ErrNotFound)
}
