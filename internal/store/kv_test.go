package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedview-snapshot/internal/models"
)

func setupTestKV(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisSnapshotKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr, NewRedisSnapshotKV(client, ttl)
}

func sampleSnapshot() *models.ScheduleSnapshot {
	return &models.ScheduleSnapshot{
		Metadata: models.SnapshotMetadata{
			CompanyName: "Sparkle Group",
			LastUpdated: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			DataFormat:  models.FormatFlat,
			DataRange:   models.DataRange{StartDate: "2025-01-01", EndDate: "2025-01-10"},
			Stats:       models.SnapshotStats{TotalJobs: 3, TotalTeams: 1, TotalEmployees: 1},
		},
		Companies: []models.Company{},
		Teams: []models.Team{
			{ID: "3", Name: "Blue", Color: "#00f", SortOrder: 2},
			{ID: "0", Name: "Unassigned", Color: "#9e9e9e", SortOrder: models.UnassignedSortOrder},
		},
		Jobs:      []models.Job{},
		Employees: []models.Employee{},
	}
}

func TestRedisSnapshotKV_SaveLoadRoundTrip(t *testing.T) {
	_, kv := setupTestKV(t, 0)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, sampleSnapshot()))

	loaded, err := kv.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)
}

func TestRedisSnapshotKV_LoadMiss(t *testing.T) {
	_, kv := setupTestKV(t, 0)

	_, err := kv.Load(context.Background())

	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisSnapshotKV_ExistsAndClear(t *testing.T) {
	_, kv := setupTestKV(t, 0)
	ctx := context.Background()

	assert.False(t, kv.Exists(ctx))

	require.NoError(t, kv.Save(ctx, sampleSnapshot()))
	assert.True(t, kv.Exists(ctx))

	require.NoError(t, kv.Clear(ctx))
	assert.False(t, kv.Exists(ctx))
}

func TestRedisSnapshotKV_SaveReplacesPrevious(t *testing.T) {
	_, kv := setupTestKV(t, 0)
	ctx := context.Background()

	first := sampleSnapshot()
	require.NoError(t, kv.Save(ctx, first))

	second := sampleSnapshot()
	second.Metadata.CompanyName = "Replacement"
	require.NoError(t, kv.Save(ctx, second))

	loaded, err := kv.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Replacement", loaded.Metadata.CompanyName)
}

func TestRedisSnapshotKV_TTLExpiry(t *testing.T) {
	mr, kv := setupTestKV(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, sampleSnapshot()))
	assert.True(t, kv.Exists(ctx))

	mr.FastForward(31 * time.Second)

	assert.False(t, kv.Exists(ctx))
}
