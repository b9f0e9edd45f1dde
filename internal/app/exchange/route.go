package exchange

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, authRequired, adminOnly gin.HandlerFunc) {
	ex := rg.Group("/exchange")
	ex.Use(authRequired)
	{
		ex.GET("/rates", handler.GetRates)
		ex.POST("/quote", handler.Quote)

		ex.GET("/overrides", adminOnly, handler.ListOverrides)
		ex.PUT("/overrides", adminOnly, handler.UpsertOverride)
		ex.DELETE("/overrides/:base/:target", adminOnly, handler.DeleteOverride)
	}
}
