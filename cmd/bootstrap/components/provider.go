package components

import (
	"log/slog"

	"notify-dispatch/internal/infra/devices"
	"notify-dispatch/internal/infra/planfile"
	"notify-dispatch/internal/infra/provider"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/usecase/commands"

	"go.uber.org/fx"
)

var ProviderModule = fx.Module("provider",
	fx.Provide(
		fx.Annotate(
			NewProviderRegistry,
			fx.As(new(commands.ProviderRegistry)),
		),
		fx.Annotate(
			devices.NewLogRegistry,
			fx.As(new(commands.DeviceRegistry)),
		),
	),
)

func NewProviderRegistry(
	cfg config.Config,
	plan *planfile.File,
	hub commands.EventHub,
	clk clock.Clock,
	slogger *slog.Logger,
) (*provider.Registry, error) {
	settings := provider.Settings{
		BreakerThreshold: cfg.Dispatch.BreakerThreshold,
		BreakerCooldown:  cfg.Dispatch.BreakerCooldown,
	}
	return provider.NewRegistry(plan.Providers, settings, hub, clk, slogger)
}
