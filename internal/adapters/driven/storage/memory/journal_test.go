package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

func TestJournal_RecordReplacesByID(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, domain.SyncRun{ID: "a", Status: domain.RunStatusRunning, StartedAt: time.Now()}))
	require.NoError(t, j.Record(ctx, domain.SyncRun{ID: "a", Status: domain.RunStatusSucceeded, StartedAt: time.Now()}))

	runs, err := j.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunStatusSucceeded, runs[0].Status)
}

func TestJournal_ListNewestFirst(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, j.Record(ctx, domain.SyncRun{ID: "old", StartedAt: base.Add(-time.Hour)}))
	require.NoError(t, j.Record(ctx, domain.SyncRun{ID: "new", StartedAt: base}))

	runs, err := j.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].ID)
}

func TestJournal_ListEmpty(t *testing.T) {
	j := NewJournal()

	runs, err := j.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
