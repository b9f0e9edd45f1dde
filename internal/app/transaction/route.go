package transaction

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, authRequired, adminOnly gin.HandlerFunc) {
	transactions := rg.Group("/transactions")
	transactions.Use(authRequired)
	{
		transactions.POST("", handler.CreateTransaction)
		transactions.GET("", handler.ListTransactions)
		transactions.PATCH("/:id/status", adminOnly, handler.UpdateStatus)
	}
}
