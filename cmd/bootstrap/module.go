package bootstrap

import (
	"notify-dispatch/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	PlanModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.ProviderModule,
	components.WorkerModule,
	components.HandlerModule,
)
