package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, authRequired, adminOnly gin.HandlerFunc) {
	notifications := rg.Group("/notifications")
	notifications.Use(authRequired)
	{
		notifications.GET("", handler.ListNotifications)
		notifications.POST("", adminOnly, handler.CreateNotification)
	}
}
