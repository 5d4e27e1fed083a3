package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	"github.com/gin-gonic/gin"
)

// RewardRoutes sets up the reward ledger routes
func RewardRoutes(r *gin.Engine) {
	reward := r.Group("/api/rewards")
	{
		reward.GET("/leaderboard", controllers.GetLeaderboard)
		reward.GET("/me", middlewares.AuthMiddleware(), controllers.GetMyRewards)
		reward.POST("/reset", middlewares.AuthMiddleware(), controllers.ResetMyRewards)
	}
}
