package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the lock key only if it still holds our token, so an
// expired lock re-acquired by another caller is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLockManager provides short-lived advisory locks backed by Redis SETNX.
// The scheduler holds one per trainer across its check-and-insert sequence.
type RedisLockManager struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLockManager(client *redis.Client, ttl time.Duration) *RedisLockManager {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLockManager{Client: client, TTL: ttl}
}

// Acquire takes the lock for the given key, retrying briefly if it is held.
// It returns a release function that must be called once the critical section
// is done. The TTL bounds the damage of a crashed holder.
func (m *RedisLockManager) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	lockKey := TrainerLockPrefix + key

	deadline := time.Now().Add(m.TTL)
	for {
		ok, err := m.Client.SetNX(ctx, lockKey, token, m.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire scheduling lock for %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("scheduling lock for %s is busy", key)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	release := func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, m.Client, []string{lockKey}, token).Err(); err != nil && err != redis.Nil {
			GetLogger().Sugar().Warnf("failed to release scheduling lock %s: %v", lockKey, err)
		}
	}
	return release, nil
}
