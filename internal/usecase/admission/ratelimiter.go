package admission

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/quota"
	"notify-dispatch/internal/pkg/clock"

	"github.com/google/uuid"
)

// BucketStore consumes one token per call, atomically refilling first.
type BucketStore interface {
	TakeToken(ctx context.Context, key string, spec quota.BucketSpec, now time.Time) (bool, error)
}

// BucketKeyFunc builds the store key for one bucket scope.
type BucketKeyFunc func(tenantID uuid.UUID, scope quota.Scope, id string) string

type RateLimiter interface {
	CheckAndConsume(ctx context.Context, subject Subject) (quota.Decision, error)
}

type rateLimiterImpl struct {
	store    BucketStore
	plans    quota.PlanSet
	keyFunc  BucketKeyFunc
	clock    clock.Clock
	slogger  *slog.Logger
}

func NewRateLimiter(store BucketStore, plans quota.PlanSet, keyFunc BucketKeyFunc, clk clock.Clock, slogger *slog.Logger) RateLimiter {
	return &rateLimiterImpl{
		store:   store,
		plans:   plans,
		keyFunc: keyFunc,
		clock:   clk,
		slogger: slogger,
	}
}

// CheckAndConsume walks the buckets narrowest first (user, service, tenant)
// and denies on the first empty one. A send with no user skips the user
// bucket. When the store is unreachable the limiter fails open: notifying
// beats throttling.
func (r *rateLimiterImpl) CheckAndConsume(ctx context.Context, subject Subject) (quota.Decision, error) {
	if subject.AdminOverride {
		r.slogger.Info("rate limit bypassed by admin override",
			"tenant_id", subject.TenantID.String(), "service", subject.Service)
		return quota.Allow(), nil
	}

	plan, _, ok := r.plans.Resolve(subject.TenantID, subject.Service)
	if !ok {
		return quota.Allow(), nil
	}

	now := r.clock.Now()

	type check struct {
		scope quota.Scope
		spec  quota.BucketSpec
		id    string
	}
	checks := []check{
		{scope: quota.ScopeUser, spec: plan.PerUser, id: subject.UserID.String()},
		{scope: quota.ScopeService, spec: plan.PerService, id: subject.Service},
		{scope: quota.ScopeTenant, spec: plan.PerTenant, id: ""},
	}

	for _, c := range checks {
		if !c.spec.Enabled() {
			continue
		}
		if c.scope == quota.ScopeUser && !subject.HasUser() {
			continue
		}

		key := r.keyFunc(subject.TenantID, c.scope, c.id)
		allowed, err := r.store.TakeToken(ctx, key, c.spec, now)
		if err != nil {
			r.slogger.Warn("rate limit store unreachable, failing open",
				"scope", c.scope.String(), "tenant_id", subject.TenantID.String(), "error", err)
			return quota.Allow(), nil
		}
		if !allowed {
			return quota.Deny(c.scope, c.spec.RetryAfter()), nil
		}
	}

	return quota.Allow(), nil
}
