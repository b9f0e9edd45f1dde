package router

import (
	"backend/internal/app/exchange"
	"backend/internal/app/health"
	"backend/internal/app/message"
	"backend/internal/app/notification"
	"backend/internal/app/plan"
	"backend/internal/app/transaction"
	"backend/internal/app/user"
	"backend/internal/gateways/websocket"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine

	authRequired gin.HandlerFunc
	adminOnly    gin.HandlerFunc
	rateLimit    gin.HandlerFunc
}

func NewRouter(logger *zap.Logger, authRequired, adminOnly, rateLimit gin.HandlerFunc) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{
		Engine:       engine,
		authRequired: authRequired,
		adminOnly:    adminOnly,
		rateLimit:    rateLimit,
	}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterUserRoutes(handler user.Handler) {
	api := r.Engine.Group("/api")
	user.RegisterAuthRoutes(api, handler, r.rateLimit)
	user.RegisterUserRoutes(api, handler, r.authRequired, r.adminOnly)
}

func (r *Router) RegisterMessageRoutes(handler message.Handler) {
	message.RegisterRoutes(r.Engine.Group("/api"), handler, r.authRequired)
}

func (r *Router) RegisterNotificationRoutes(handler notification.Handler) {
	notification.RegisterRoutes(r.Engine.Group("/api"), handler, r.authRequired, r.adminOnly)
}

func (r *Router) RegisterPlanRoutes(handler plan.Handler) {
	plan.RegisterRoutes(r.Engine.Group("/api"), handler, r.authRequired, r.adminOnly)
}

func (r *Router) RegisterTransactionRoutes(handler transaction.Handler) {
	transaction.RegisterRoutes(r.Engine.Group("/api"), handler, r.authRequired, r.adminOnly)
}

func (r *Router) RegisterExchangeRoutes(handler exchange.Handler) {
	exchange.RegisterRoutes(r.Engine.Group("/api"), handler, r.authRequired, r.adminOnly)
}
