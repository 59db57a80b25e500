package admission

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/pkg/clock"

	"github.com/google/uuid"
)

// LedgerReader loads the spend ledger for an admission check. Reads are
// best-effort snapshots; the authoritative increment happens on success.
type LedgerReader interface {
	FindLedger(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period) (*budget.Ledger, error)
}

// BudgetCheck is a budget decision plus the cost the check was priced at.
type BudgetCheck struct {
	Decision  budget.Decision
	CostMicro int64
}

type BudgetEnforcer interface {
	Check(ctx context.Context, subject Subject) (BudgetCheck, error)
}

type budgetEnforcerImpl struct {
	ledgers LedgerReader
	costs   budget.CostTable
	clock   clock.Clock
	slogger *slog.Logger
}

func NewBudgetEnforcer(ledgers LedgerReader, costs budget.CostTable, clk clock.Clock, slogger *slog.Logger) BudgetEnforcer {
	return &budgetEnforcerImpl{
		ledgers: ledgers,
		costs:   costs,
		clock:   clk,
		slogger: slogger,
	}
}

// Check prices the send and admits it against the current period's ledger.
// Ledger store failures fail open, same as the rate limiter.
func (b *budgetEnforcerImpl) Check(ctx context.Context, subject Subject) (BudgetCheck, error) {
	cost := b.costs.CostMicro(subject.Channel, subject.Body)
	period := budget.PeriodOf(b.clock.Now())

	ledger, err := b.ledgers.FindLedger(ctx, subject.TenantID, subject.Service, subject.Channel, period)
	if err != nil {
		b.slogger.Warn("budget ledger unreachable, failing open",
			"tenant_id", subject.TenantID.String(), "service", subject.Service, "error", err)
		return BudgetCheck{Decision: budget.Decision{Allowed: true}, CostMicro: cost}, nil
	}

	decision, err := ledger.Check(cost, subject.Priority)
	if err != nil {
		return BudgetCheck{}, err
	}
	return BudgetCheck{Decision: decision, CostMicro: cost}, nil
}
