package commands

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
)

var ErrBudgetScanFailed = errs.New("failed to scan budget ledgers")

// BudgetScanner sweeps ledgers that crossed an alert threshold without the
// flag being set, which happens when the send-time publish lost the race or
// the instance died between consume and alert.
type BudgetScanner interface {
	ScanAlerts(ctx context.Context) (int, error)
}

type budgetScannerImpl struct {
	budgets BudgetRepository
	hub     EventHub
	clock   clock.Clock
	slogger *slog.Logger
}

func NewBudgetScanner(budgets BudgetRepository, hub EventHub, clk clock.Clock, slogger *slog.Logger) BudgetScanner {
	return &budgetScannerImpl{budgets: budgets, hub: hub, clock: clk, slogger: slogger}
}

func (u *budgetScannerImpl) ScanAlerts(ctx context.Context) (int, error) {
	period := budget.PeriodOf(u.clock.Now())
	ledgers, err := u.budgets.ListPendingAlerts(ctx, period)
	if err != nil {
		if infra.IsKind(err, infra.KindUnavailable) {
			u.slogger.Warn("budget scan skipped, store unavailable", "error", err)
			return 0, nil
		}
		return 0, errs.Mark(err, ErrBudgetScanFailed)
	}
	for _, ledger := range ledgers {
		settleBudgetAlert(ctx, u.budgets, u.hub, u.clock, u.slogger, ledger)
	}
	return len(ledgers), nil
}
