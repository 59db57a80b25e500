package components

import (
	"notify-dispatch/internal/handler"
	"notify-dispatch/internal/handler/api"
	"notify-dispatch/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewNotificationHandler,
		api.NewAdminHandler,
		api.NewDeliveryHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
