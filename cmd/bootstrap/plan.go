package bootstrap

import (
	"notify-dispatch/internal/infra/planfile"
	"notify-dispatch/internal/pkg/config"

	"go.uber.org/fx"
)

var PlanModule = fx.Module("plan",
	fx.Provide(
		NewPlanFile,
	),
)

func NewPlanFile(cfg config.Config) (*planfile.File, error) {
	return planfile.Load(cfg.Dispatch.PlanPath)
}
