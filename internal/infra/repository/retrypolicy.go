package repository

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/retrypolicy"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/pkg/pgconv"
)

type RetryPolicyRepository struct {
	db db.DBTX
}

func NewRetryPolicyRepository(conn db.DBTX) *RetryPolicyRepository {
	return &RetryPolicyRepository{
		db: conn,
	}
}

// LoadAll reads every configured policy override. The result feeds the
// in-memory PolicySet used on the dispatch path.
func (r *RetryPolicyRepository) LoadAll(ctx context.Context) (map[retrypolicy.PolicyKey]retrypolicy.Policy, error) {
	const query = `
		SELECT tenant, channel, max_attempts, base_delay_ms, factor, max_delay_ms, jitter_bound_ms
		FROM retry_policies`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load retry policies", err)
	}
	defer rows.Close()

	policies := map[retrypolicy.PolicyKey]retrypolicy.Policy{}
	for rows.Next() {
		var (
			tenant        string
			channel       string
			maxAttempts   int
			baseDelayMs   int64
			factor        float64
			maxDelayMs    int64
			jitterBoundMs int64
		)
		if err := rows.Scan(&tenant, &channel, &maxAttempts, &baseDelayMs, &factor, &maxDelayMs, &jitterBoundMs); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan retry policy row", err)
		}
		policies[retrypolicy.PolicyKey{Tenant: tenant, Channel: channel}] = retrypolicy.Policy{
			MaxAttempts: maxAttempts,
			BaseDelay:   time.Duration(baseDelayMs) * time.Millisecond,
			Factor:      factor,
			MaxDelay:    time.Duration(maxDelayMs) * time.Millisecond,
			JitterBound: time.Duration(jitterBoundMs) * time.Millisecond,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to read retry policy rows", err)
	}
	return policies, nil
}

func (r *RetryPolicyRepository) Upsert(ctx context.Context, key retrypolicy.PolicyKey, policy retrypolicy.Policy, now time.Time) error {
	const query = `
		INSERT INTO retry_policies (tenant, channel, max_attempts, base_delay_ms, factor, max_delay_ms, jitter_bound_ms, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant, channel) DO UPDATE
		SET max_attempts = EXCLUDED.max_attempts,
		    base_delay_ms = EXCLUDED.base_delay_ms,
		    factor = EXCLUDED.factor,
		    max_delay_ms = EXCLUDED.max_delay_ms,
		    jitter_bound_ms = EXCLUDED.jitter_bound_ms,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		key.Tenant,
		key.Channel,
		policy.MaxAttempts,
		policy.BaseDelay.Milliseconds(),
		policy.Factor,
		policy.MaxDelay.Milliseconds(),
		policy.JitterBound.Milliseconds(),
		pgconv.TimeToPgtype(now.UTC()),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to upsert retry policy", err)
	}
	return nil
}
