package redisstore

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Release deletes the key only if this holder still owns it, so an expired
// lock re-acquired by another instance is never released from here.
var releaseLockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

// JobLock serializes scheduled jobs across instances with SET NX leases.
type JobLock struct {
	rdb *redis.Client
}

func NewJobLock(rdb *redis.Client) *JobLock {
	return &JobLock{
		rdb: rdb,
	}
}

// TryAcquire takes the named lock for at most ttl. It returns false when
// another instance holds it. The returned release is safe to call after
// expiry.
func (l *JobLock) TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(), acquired bool, err error) {
	key := "lock:" + name
	holder := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, holder, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %q: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseLockScript.Run(releaseCtx, l.rdb, []string{key}, holder).Err()
	}
	return release, true, nil
}
