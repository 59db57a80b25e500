package redisstore

import (
	"context"
	"fmt"
	"time"

	"notify-dispatch/internal/domain/quota"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Refill and consume happen in one script so concurrent callers cannot
// interleave between the read and the decrement. The caller passes now so
// the decision is deterministic and independent of server TIME.
var takeTokenScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_per_ms = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])
local ttl_ms = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now_ms
end

local elapsed = now_ms - ts
if elapsed > 0 then
  tokens = tokens + elapsed * refill_per_ms
  if tokens > capacity then
    tokens = capacity
  end
  ts = now_ms
end

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'ts', ts)
redis.call('PEXPIRE', key, ttl_ms)
return allowed
`)

type RateLimitStore struct {
	rdb *redis.Client
}

func NewRateLimitStore(rdb *redis.Client) *RateLimitStore {
	return &RateLimitStore{
		rdb: rdb,
	}
}

// BucketKey namespaces one bucket per tenant and scope.
func BucketKey(tenantID uuid.UUID, scope quota.Scope, id string) string {
	if id == "" {
		return fmt.Sprintf("rl:%s:%s", tenantID, scope)
	}
	return fmt.Sprintf("rl:%s:%s:%s", tenantID, scope, id)
}

// TakeToken consumes one token from the bucket, refilling lazily based on
// elapsed time. It reports false when the bucket is empty.
func (s *RateLimitStore) TakeToken(ctx context.Context, key string, spec quota.BucketSpec, now time.Time) (bool, error) {
	refillPerMs := spec.RefillPerSec / 1000.0
	ttl := bucketTTL(spec)

	allowed, err := takeTokenScript.Run(ctx, s.rdb, []string{key},
		spec.Capacity,
		refillPerMs,
		now.UnixMilli(),
		ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to take token: %w", err)
	}
	return allowed == 1, nil
}

// bucketTTL keeps the hash alive long enough for a drained bucket to refill
// completely, plus slack. An expired key reads as a full bucket, which is
// exactly the state it would have refilled to.
func bucketTTL(spec quota.BucketSpec) time.Duration {
	refillAll := time.Duration(float64(spec.Capacity) / spec.RefillPerSec * float64(time.Second))
	return refillAll + time.Minute
}
