package plan

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, authRequired, adminOnly gin.HandlerFunc) {
	plans := rg.Group("/investment-plans")
	plans.Use(authRequired)
	{
		plans.GET("", handler.GetAllPlans)
		plans.GET("/:id", handler.GetPlan)
		plans.POST("/:id/projections", handler.Project)

		plans.POST("", adminOnly, handler.CreatePlan)
		plans.PUT("/:id", adminOnly, handler.UpdatePlan)
		plans.DELETE("/:id", adminOnly, handler.DeletePlan)
	}
}
