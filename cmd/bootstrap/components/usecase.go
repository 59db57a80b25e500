package components

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/quota"
	"notify-dispatch/internal/domain/retrypolicy"
	"notify-dispatch/internal/domain/routing"
	"notify-dispatch/internal/infra/planfile"
	"notify-dispatch/internal/infra/redisstore"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/usecase/admission"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseAdmissionModule,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPlanSet,
	NewCostTable,
	NewLaneRouter,
	NewPolicyCache,
	func(cache *commands.PolicyCache) commands.PolicyResolver {
		return cache
	},
)

var usecaseAdmissionModule = fx.Module("usecase/admission",
	fx.Provide(
		NewRateLimiter,
		admission.NewBudgetEnforcer,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDeliverer,
		NewLaneRunnerConfig,
		commands.NewLaneRunner,
		commands.NewBudgetScanner,
		commands.NewNotificationUseCase,
		commands.NewAuthCommands,
		commands.NewAdminCommands,
		NewHousekeeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewNotificationQueries,
	),
)

func NewPlanSet(plan *planfile.File) (quota.PlanSet, error) {
	return plan.PlanSet()
}

func NewCostTable(plan *planfile.File) budget.CostTable {
	return plan.CostTable()
}

func NewLaneRouter(plan *planfile.File) *routing.Router {
	return routing.NewRouter(plan.CriticalTemplates)
}

// NewPolicyCache seeds the cache from the store once at startup; the
// worker's reload job keeps it fresh afterwards.
func NewPolicyCache(store commands.RetryPolicyStore) (*commands.PolicyCache, error) {
	policies, err := store.LoadAll(context.Background())
	if err != nil {
		return nil, err
	}
	return commands.NewPolicyCache(retrypolicy.NewPolicySet(policies, retrypolicy.DefaultPolicy())), nil
}

func NewRateLimiter(store admission.BucketStore, plans quota.PlanSet, clk clock.Clock, slogger *slog.Logger) admission.RateLimiter {
	return admission.NewRateLimiter(store, plans, redisstore.BucketKey, clk, slogger)
}

func NewLaneRunnerConfig(cfg config.Config) commands.LaneRunnerConfig {
	return commands.LaneRunnerConfig{
		BatchSize:   cfg.Dispatch.LaneBatchSize,
		Concurrency: cfg.Dispatch.LaneConcurrency,
		BulkPerSec:  cfg.Dispatch.BulkSendPerSec,
	}
}

func NewHousekeeper(repo commands.NotificationRepository, cfg config.Config, clk clock.Clock, slogger *slog.Logger) commands.Housekeeper {
	return commands.NewHousekeeper(repo, cfg.Dispatch.DedupWindow, clk, slogger)
}
