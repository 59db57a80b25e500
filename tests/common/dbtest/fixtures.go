//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"notify-dispatch/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedCredential inserts an active service credential and returns its id.
// The secret is bcrypt-hashed the same way the admin API stores it.
func SeedCredential(t *testing.T, db DBLike, tenantID uuid.UUID, service, secret string, scopes []string) uuid.UUID {
	t.Helper()

	hash, err := password.HashPassword(secret)
	require.NoError(t, err)

	credentialID := uuid.New()
	ctx := context.Background()
	_, err = db.Exec(ctx,
		"INSERT INTO service_credentials (id, tenant_id, service, secret_hash, scopes, is_active) VALUES ($1, $2, $3, $4, $5, TRUE)",
		credentialID, tenantID, service, hash, scopes)
	require.NoError(t, err)

	return credentialID
}

// SeedBudgetLimit sets the standing monthly cap for tenant/service/channel.
func SeedBudgetLimit(t *testing.T, db DBLike, tenantID uuid.UUID, service, channel string, limitMicro int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO budget_limits (tenant_id, service, channel, monthly_limit_micro) VALUES ($1, $2, $3, $4) ON CONFLICT (tenant_id, service, channel) DO UPDATE SET monthly_limit_micro = EXCLUDED.monthly_limit_micro",
		tenantID, service, channel, limitMicro)
	require.NoError(t, err)
}

// SeedLedger writes a consumption row for a billing period directly,
// bypassing the dispatch path.
func SeedLedger(t *testing.T, db DBLike, tenantID uuid.UUID, service, channel, period string, limitMicro, consumedMicro int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO budget_ledgers (tenant_id, service, channel, period, limit_micro, consumed_micro) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (tenant_id, service, channel, period) DO UPDATE SET limit_micro = EXCLUDED.limit_micro, consumed_micro = EXCLUDED.consumed_micro",
		tenantID, service, channel, period, limitMicro, consumedMicro)
	require.NoError(t, err)
}

// SeedRetryPolicy inserts a backoff override. Tenant accepts a UUID string
// or "*", channel a channel name or "*".
func SeedRetryPolicy(t *testing.T, db DBLike, tenant, channel string, maxAttempts int, baseDelayMS int64, factor float64, maxDelayMS, jitterBoundMS int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO retry_policies (tenant, channel, max_attempts, base_delay_ms, factor, max_delay_ms, jitter_bound_ms) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (tenant, channel) DO UPDATE SET max_attempts = EXCLUDED.max_attempts, base_delay_ms = EXCLUDED.base_delay_ms, factor = EXCLUDED.factor, max_delay_ms = EXCLUDED.max_delay_ms, jitter_bound_ms = EXCLUDED.jitter_bound_ms",
		tenant, channel, maxAttempts, baseDelayMS, factor, maxDelayMS, jitterBoundMS)
	require.NoError(t, err)
}

// CountNotifications reports rows for a tenant, optionally narrowed to one
// status ("" counts everything).
func CountNotifications(t *testing.T, db DBLike, tenantID uuid.UUID, status string) int {
	t.Helper()

	ctx := context.Background()
	var count int
	var err error
	if status == "" {
		err = db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE tenant_id = $1", tenantID).Scan(&count)
	} else {
		err = db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE tenant_id = $1 AND status = $2", tenantID, status).Scan(&count)
	}
	require.NoError(t, err)
	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
