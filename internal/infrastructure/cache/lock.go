package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

var (
	refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

	unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
)

// TryLock takes key for ttl with token as the owner. Without redis there is
// nothing to coordinate with: the lock is granted and a warning is logged
// once.
func (r *Redis) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		r.warnNoLockOnce()
		return true, nil
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return ok, nil
}

// Refresh extends key to ttl if token still owns it. false means the lock
// expired or was taken by someone else.
func (r *Redis) Refresh(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	n, err := refreshScript.Run(ctx, r.client, []string{key}, token, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Unlock deletes key only if token owns it.
func (r *Redis) Unlock(ctx context.Context, key, token string) (bool, error) {
	if r.isUnavailable() {
		return true, nil
	}
	n, err := unlockScript.Run(ctx, r.client, []string{key}, token).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *Redis) warnNoLockOnce() {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedNoLock.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] WARN Redis unavailable, run lock disabled: runs are only excluded within this process")
	}
}
