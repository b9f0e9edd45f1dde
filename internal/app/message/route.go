package message

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, authRequired gin.HandlerFunc) {
	messages := rg.Group("/messages")
	messages.Use(authRequired)
	{
		messages.POST("/:user_id", handler.SendMessage)
		messages.GET("/:user_id", handler.GetConversation)
	}
}
