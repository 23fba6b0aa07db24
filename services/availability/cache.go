package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"brightwash/utils"
)

// snapshotTTL keeps cached slot lists short-lived. The calendar stays
// authoritative; a commit can make a cached list stale for at most this long,
// and the commit-time re-check still rejects a taken slot.
const snapshotTTL = 30 * time.Second

// SnapshotCache holds recently computed slot lists per service. Best effort
// on both sides: a miss or a failed write just means recomputing.
type SnapshotCache interface {
	Get(ctx context.Context, service string) ([]time.Time, bool)
	Set(ctx context.Context, service string, slots []time.Time)
}

// RedisSnapshotCache implements SnapshotCache on the shared cache client.
type RedisSnapshotCache struct {
	Client *redis.Client
}

func cacheKey(service string) string {
	return "availability:" + service
}

// Get returns the cached slot list for a service, if one is fresh.
func (c *RedisSnapshotCache) Get(ctx context.Context, service string) ([]time.Time, bool) {
	raw, err := c.Client.Get(ctx, cacheKey(service)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.GetLogger().Warn("availability cache read failed",
			zap.String("service", service), zap.Error(err))
		return nil, false
	}

	var stamps []string
	if err := json.Unmarshal([]byte(raw), &stamps); err != nil {
		utils.GetLogger().Warn("availability cache entry corrupt",
			zap.String("service", service), zap.Error(err))
		return nil, false
	}

	slots := make([]time.Time, 0, len(stamps))
	for _, stamp := range stamps {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			return nil, false
		}
		slots = append(slots, ts)
	}
	return slots, true
}

// Set stores a freshly computed slot list with the snapshot TTL.
func (c *RedisSnapshotCache) Set(ctx context.Context, service string, slots []time.Time) {
	stamps := make([]string, 0, len(slots))
	for _, s := range slots {
		stamps = append(stamps, s.Format(time.RFC3339))
	}
	raw, err := json.Marshal(stamps)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, cacheKey(service), raw, snapshotTTL).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed",
			zap.String("service", service), zap.Error(err))
	}
}
