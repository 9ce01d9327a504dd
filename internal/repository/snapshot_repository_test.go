package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/database"
)

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewSQLite(ctx, filepath.Join(t.TempDir(), "state", "dashboard.db"))
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewSnapshotRepository(ctx, db)
	require.NoError(t, err)

	notes := []models.Note{{ID: "n1", Content: "call parent", Pinned: true}}
	require.NoError(t, repo.SaveAll(ctx, map[string]interface{}{
		"notes":   notes,
		"compare": models.CompareState{MaxItems: 3},
	}))
	require.NoError(t, repo.SaveAll(ctx, map[string]interface{}{
		"notes": []models.Note{},
	}))

	buckets, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, buckets, 2)

	var restored []models.Note
	require.NoError(t, json.Unmarshal(buckets["notes"], &restored))
	assert.Empty(t, restored)

	var compare models.CompareState
	require.NoError(t, json.Unmarshal(buckets["compare"], &compare))
	assert.Equal(t, 3, compare.MaxItems)
}
