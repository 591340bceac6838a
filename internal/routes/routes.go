package routes

import (
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP and WebSocket route under /api.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authn *middleware.Authenticator,
	limiter *middleware.RateLimiter,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api")

	SetupPublicRoutes(api, appHandlers, authn, limiter)
	SetupCommonRoutes(api, appHandlers, authn)
	SetupJobSeekerRoutes(api, appHandlers, authn)
	SetupEmployerRoutes(api, appHandlers, authn)
	SetupAdminRoutes(api, appHandlers.AdminHandler, authn)
	SetupWebSocketRoutes(api, wsHandler, authn)

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
