package components

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewWorker,
	),
	fx.Invoke(registerWorker),
)

func NewWorker(
	cfg config.Config,
	lanes commands.LaneRunner,
	budgets commands.BudgetScanner,
	keeper commands.Housekeeper,
	policies *commands.PolicyCache,
	store commands.RetryPolicyStore,
	locks commands.JobLock,
	providers commands.ProviderRegistry,
	slogger *slog.Logger,
) *worker.Service {
	return worker.New(cfg.Dispatch, lanes, budgets, keeper, policies, store, locks, providers, slogger)
}

func registerWorker(lc fx.Lifecycle, svc *worker.Service) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// The hook context ends once startup finishes; jobs need their own.
			return svc.Start(context.Background())
		},
		OnStop: func(_ context.Context) error {
			svc.Stop()
			return nil
		},
	})
}
