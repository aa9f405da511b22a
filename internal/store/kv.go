package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"schedview-snapshot/internal/models"
)

// ErrMiss is returned by Load when no snapshot has been saved yet.
var ErrMiss = errors.New("snapshot miss")

// SnapshotKV is the persistence collaborator for the canonical snapshot.
// It stores the snapshot verbatim and returns it unchanged on later loads;
// a new save fully replaces the previous snapshot.
type SnapshotKV interface {
	Save(ctx context.Context, snapshot *models.ScheduleSnapshot) error
	Load(ctx context.Context) (*models.ScheduleSnapshot, error)
	Clear(ctx context.Context) error
	Exists(ctx context.Context) bool
}

// snapshotKey is the single well-known key for the current snapshot.
const snapshotKey = "schedview:snapshot:current"

type RedisSnapshotKV struct {
	c   *redis.Client
	ttl time.Duration // zero = keep forever
}

func NewRedisSnapshotKV(c *redis.Client, ttl time.Duration) *RedisSnapshotKV {
	return &RedisSnapshotKV{c: c, ttl: ttl}
}

func (r *RedisSnapshotKV) Save(ctx context.Context, snapshot *models.ScheduleSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return r.c.Set(ctx, snapshotKey, data, r.ttl).Err()
}

func (r *RedisSnapshotKV) Load(ctx context.Context) (*models.ScheduleSnapshot, error) {
	data, err := r.c.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, err
	}

	var snapshot models.ScheduleSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *RedisSnapshotKV) Clear(ctx context.Context) error {
	return r.c.Del(ctx, snapshotKey).Err()
}

func (r *RedisSnapshotKV) Exists(ctx context.Context) bool {
	n, err := r.c.Exists(ctx, snapshotKey).Result()
	return err == nil && n > 0
}
