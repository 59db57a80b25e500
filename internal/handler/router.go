package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"notify-dispatch/internal/handler/api"
	"notify-dispatch/internal/handler/middleware"
	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/pkg/jwt"
	"notify-dispatch/internal/usecase/commands"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	notificationHandler *api.NotificationHandler,
	adminHandler *api.AdminHandler,
	deliveryHandler *api.DeliveryHandler,
	authMiddleware *middleware.AuthMiddleware,
	registry commands.ProviderRegistry,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, notificationHandler, adminHandler, deliveryHandler, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	notificationHandler *api.NotificationHandler,
	adminHandler *api.AdminHandler,
	deliveryHandler *api.DeliveryHandler,
	authMiddleware *middleware.AuthMiddleware,
	registry commands.ProviderRegistry,
) {
	engine.GET("/health", healthCheck(registry))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/auth/token", Handler: authHandler.Token},
			{Method: http.MethodPost, Path: "/delivery/callbacks", Handler: deliveryHandler.Callback},
		})

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth(), authMiddleware.RequireScope(jwt.ScopeSend))
		{
			addRoutes(notifications, []route{
				{Method: http.MethodPost, Path: "", Handler: notificationHandler.Send},
				{Method: http.MethodGet, Path: "", Handler: notificationHandler.List},
				{Method: http.MethodGet, Path: "/dead-letters", Handler: notificationHandler.DeadLetters},
				{Method: http.MethodGet, Path: "/:id", Handler: notificationHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: notificationHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/requeue", Handler: notificationHandler.Requeue},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireScope(jwt.ScopeAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPut, Path: "/budgets/limit", Handler: adminHandler.SetBudgetLimit},
				{Method: http.MethodGet, Path: "/budgets/ledgers", Handler: adminHandler.Ledgers},
				{Method: http.MethodPut, Path: "/retry-policies", Handler: adminHandler.UpsertRetryPolicy},
				{Method: http.MethodPost, Path: "/credentials", Handler: adminHandler.CreateCredential},
				{Method: http.MethodDelete, Path: "/credentials/:id", Handler: adminHandler.DeactivateCredential},
			})
		}
	}
}

// @Summary Health check
// @Description Check service health including provider breaker states
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func healthCheck(registry commands.ProviderRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		providers := gin.H{}
		for channel, states := range registry.Health() {
			providers[channel.String()] = states
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"providers": providers,
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
