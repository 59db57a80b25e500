package repository

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `
	tenant_id, service, channel, period, limit_micro, consumed_micro,
	alert80_sent, alert100_sent`

// Limit lookup falls back from the exact service to the tenant-wide '*'
// entry; no entry means the combination is unmetered.
const limitLookup = `
	COALESCE(
		(SELECT monthly_limit_micro FROM budget_limits
		 WHERE tenant_id = $1 AND service = $2 AND channel = $3),
		(SELECT monthly_limit_micro FROM budget_limits
		 WHERE tenant_id = $1 AND service = '*' AND channel = $3),
		0
	)`

type BudgetRepository struct {
	db db.DBTX
}

func NewBudgetRepository(conn db.DBTX) *BudgetRepository {
	return &BudgetRepository{
		db: conn,
	}
}

// FindLedger loads the ledger for one tenant/service/channel/period. When no
// spend has been recorded yet there is no row; the ledger materializes in
// memory with the configured limit and zero consumption.
func (r *BudgetRepository) FindLedger(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period) (*budget.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM budget_ledgers
		WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4`

	ledger, err := scanLedger(r.db.QueryRow(ctx, query, tenantID, service, channel.String(), period.String()))
	if err == nil {
		return ledger, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find budget ledger", err)
	}

	var limitMicro int64
	if err := r.db.QueryRow(ctx, `SELECT `+limitLookup, tenantID, service, channel.String()).Scan(&limitMicro); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to resolve budget limit", err)
	}

	fresh, err := budget.NewLedger(tenantID, service, channel, period, limitMicro)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to build budget ledger", err)
	}
	return fresh, nil
}

// ConsumeCost adds actual spend in one atomic upsert-increment and returns
// the ledger after the increment. Concurrent consumers therefore never lose
// an update and the consumed total only moves up.
func (r *BudgetRepository) ConsumeCost(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period, costMicro int64, now time.Time) (*budget.Ledger, error) {
	query := `
		INSERT INTO budget_ledgers (tenant_id, service, channel, period, limit_micro, consumed_micro, updated_at)
		VALUES ($1, $2, $3, $4, ` + limitLookup + `, $5, $6)
		ON CONFLICT (tenant_id, service, channel, period) DO UPDATE
		SET consumed_micro = budget_ledgers.consumed_micro + EXCLUDED.consumed_micro,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + ledgerColumns

	ledger, err := scanLedger(r.db.QueryRow(ctx, query,
		tenantID, service, channel.String(), period.String(),
		costMicro, pgconv.TimeToPgtype(now.UTC()),
	))
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to record budget consumption", err)
	}
	return ledger, nil
}

// MarkAlertSent flips a threshold flag and reports whether this caller won
// the flip. The WHERE NOT guard makes the alert one-shot per period even
// with concurrent scanners.
func (r *BudgetRepository) MarkAlertSent(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period, threshold float64, now time.Time) (bool, error) {
	var query string
	if threshold >= 1.0 {
		query = `
			UPDATE budget_ledgers
			SET alert100_sent = TRUE, alert80_sent = TRUE, updated_at = $5
			WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4
			  AND NOT alert100_sent`
	} else {
		query = `
			UPDATE budget_ledgers
			SET alert80_sent = TRUE, updated_at = $5
			WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4
			  AND NOT alert80_sent`
	}

	tag, err := r.db.Exec(ctx, query, tenantID, service, channel.String(), period.String(), pgconv.TimeToPgtype(now.UTC()))
	if err != nil {
		return false, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to mark budget alert", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPendingAlerts returns ledgers of the period that crossed a threshold
// whose alert has not gone out yet.
func (r *BudgetRepository) ListPendingAlerts(ctx context.Context, period budget.Period) ([]*budget.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM budget_ledgers
		WHERE period = $1 AND limit_micro > 0
		  AND (
			(consumed_micro >= limit_micro AND NOT alert100_sent)
			OR (consumed_micro * 10 >= limit_micro * 8 AND NOT alert80_sent)
		  )`

	rows, err := r.db.Query(ctx, query, period.String())
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list pending budget alerts", err)
	}
	defer rows.Close()

	var ledgers []*budget.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan budget ledger row", err)
		}
		ledgers = append(ledgers, ledger)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to read budget ledger rows", err)
	}
	return ledgers, nil
}

// SetLimit upserts the configured monthly limit and refreshes the snapshot
// on the current period's ledger if one exists.
func (r *BudgetRepository) SetLimit(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, limitMicro int64, period budget.Period, now time.Time) error {
	const upsert = `
		INSERT INTO budget_limits (tenant_id, service, channel, monthly_limit_micro, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, service, channel) DO UPDATE
		SET monthly_limit_micro = EXCLUDED.monthly_limit_micro,
		    updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, upsert, tenantID, service, channel.String(), limitMicro, pgconv.TimeToPgtype(now.UTC())); err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to set budget limit", err)
	}

	const refresh = `
		UPDATE budget_ledgers SET limit_micro = $5, updated_at = $6
		WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4`

	if _, err := r.db.Exec(ctx, refresh, tenantID, service, channel.String(), period.String(), limitMicro, pgconv.TimeToPgtype(now.UTC())); err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to refresh ledger limit", err)
	}
	return nil
}

func scanLedger(row pgx.Row) (*budget.Ledger, error) {
	var (
		tenantID      uuid.UUID
		service       string
		channel       string
		period        string
		limitMicro    int64
		consumedMicro int64
		alert80Sent   bool
		alert100Sent  bool
	)
	if err := row.Scan(&tenantID, &service, &channel, &period, &limitMicro, &consumedMicro, &alert80Sent, &alert100Sent); err != nil {
		return nil, err
	}
	return budget.ReconstructLedger(
		tenantID, service, notification.Channel(channel), budget.Period(period),
		limitMicro, consumedMicro, alert80Sent, alert100Sent,
	), nil
}
