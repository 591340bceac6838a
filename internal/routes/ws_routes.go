package routes

import (
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/ws"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes mounts the notification stream. Browsers cannot set
// headers on a WebSocket handshake, so the token is also read from ?token=.
func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *ws.WebSocketHandler, authn *middleware.Authenticator) {
	r.GET("/ws", authn.RequiredWithQuery(), wsHandler.ServeWS)
	logger.Info("WebSocket route /api/ws registered")
}
