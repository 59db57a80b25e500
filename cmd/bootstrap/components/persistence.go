package components

import (
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/infra/readstore"
	"notify-dispatch/internal/infra/redisstore"
	"notify-dispatch/internal/infra/repository"
	"notify-dispatch/internal/usecase/admission"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
	readstoreModule,
	redisStoreModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// Notification
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		// Budget
		fx.Annotate(
			repository.NewBudgetRepository,
			fx.As(new(commands.BudgetRepository)),
			fx.As(new(admission.LedgerReader)),
		),
		// RetryPolicy
		fx.Annotate(
			repository.NewRetryPolicyRepository,
			fx.As(new(commands.RetryPolicyStore)),
		),
		// Credential
		fx.Annotate(
			repository.NewCredentialRepository,
			fx.As(new(commands.CredentialRepository)),
		),
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Notification
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
	),
)

var redisStoreModule = fx.Module("persistence/redis",
	fx.Provide(
		// Rate limit buckets
		fx.Annotate(
			redisstore.NewRateLimitStore,
			fx.As(new(admission.BucketStore)),
		),
		// Cross-instance job locks
		fx.Annotate(
			redisstore.NewJobLock,
			fx.As(new(commands.JobLock)),
		),
		// In-app events and budget alerts
		fx.Annotate(
			redisstore.NewEventHub,
			fx.As(new(commands.EventHub)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
