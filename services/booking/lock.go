package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// lockTTL bounds how long a commit may hold a slot lock. It only needs to
// cover the check-then-insert window.
const lockTTL = 15 * time.Second

// SlotLocker serializes near-simultaneous commits for the same slot within
// this process group. The external calendar remains the final arbiter; the
// lock only narrows the local race window.
type SlotLocker interface {
	Acquire(ctx context.Context, slotKey string) (bool, error)
	Release(ctx context.Context, slotKey string)
}

// RedisSlotLocker implements SlotLocker with a short-TTL SETNX key per slot.
type RedisSlotLocker struct {
	Client *redis.Client
}

// Acquire takes the lock for a slot key. False without error means another
// commit currently holds it.
func (l *RedisSlotLocker) Acquire(ctx context.Context, slotKey string) (bool, error) {
	ok, err := l.Client.SetNX(ctx, "slotlock:"+slotKey, time.Now().UnixNano(), lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire slot lock %s: %w", slotKey, err)
	}
	return ok, nil
}

// Release drops the lock. Best effort; an unreleased lock expires with the TTL.
func (l *RedisSlotLocker) Release(ctx context.Context, slotKey string) {
	l.Client.Del(ctx, "slotlock:"+slotKey)
}
