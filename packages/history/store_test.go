package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
	"github.com/abdul-hamid-achik/reqx/packages/http"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport() *runner.Report {
	return &runner.Report{
		File:     "api.reqx",
		Total:    2,
		Duration: 150 * time.Millisecond,
		Results: []*runner.RequestResult{
			{
				Index:   1,
				Request: http.NewRequest("GET", "http://localhost:3000/users"),
				Response: &http.Response{
					StatusCode: 200,
					Duration:   80 * time.Millisecond,
				},
			},
			{
				Index:   2,
				Request: http.NewRequest("POST", "http://localhost:3000/users"),
				DryRun:  true,
			},
		},
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runID, err := store.Record(ctx, sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "api.reqx", runs[0].File)
	assert.Equal(t, 2, runs[0].Total)
	assert.Equal(t, 1, runs[0].Executed)
	assert.Equal(t, int64(150), runs[0].DurationMs)
}

func TestStore_Requests(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runID, err := store.Record(ctx, sampleReport())
	require.NoError(t, err)

	records, err := store.Requests(ctx, runID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "GET", records[0].Method)
	assert.Equal(t, "http://localhost:3000/users", records[0].URL)
	assert.Equal(t, 200, records[0].Status)
	assert.Equal(t, int64(80), records[0].DurationMs)
	assert.False(t, records[0].DryRun)

	assert.True(t, records[1].DryRun)
	assert.Zero(t, records[1].Status)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, sampleReport())
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
