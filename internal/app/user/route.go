package user

import "github.com/gin-gonic/gin"

func RegisterAuthRoutes(rg *gin.RouterGroup, handler Handler, rateLimit gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	authGroup.Use(rateLimit)
	{
		authGroup.POST("/signup", handler.Signup)
		authGroup.POST("/login", handler.Login)
	}
}

func RegisterUserRoutes(rg *gin.RouterGroup, handler Handler, authRequired, adminOnly gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/me", handler.Me)
		users.PUT("/me", handler.UpdateMe)
		users.GET("", adminOnly, handler.ListUsers)
		users.GET("/:id", adminOnly, handler.GetUser)
	}
}
