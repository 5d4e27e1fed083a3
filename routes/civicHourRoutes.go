package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
)

// CivicHourRoutes sets up the civic hour routes: teachers submit claims,
// officials verify them
func CivicHourRoutes(r *gin.Engine) {
	civic := r.Group("/api/civic-hours")
	civic.Use(middlewares.AuthMiddleware())
	{
		civic.POST("/", middlewares.RequireRole(models.RoleTeacher), controllers.CreateCivicHour)
		civic.GET("/", controllers.GetCivicHours)
		civic.POST("/:id/verify", middlewares.RequireRole(models.RoleOfficial), controllers.VerifyCivicHour)
	}
}
