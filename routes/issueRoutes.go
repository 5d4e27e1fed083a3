package routes

import (
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes. Status changes and assignment
// are gated to officials; everything else needs only a valid token.
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(10), controllers.CreateIssue)
		issue.GET("/", controllers.GetAllIssues)
		issue.GET("/recent", controllers.RecentIssues)
		issue.GET("/analytics", controllers.GetIssueAnalytics)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/:id", controllers.GetIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleOfficial), controllers.UpdateIssueStatus)
		issue.POST("/:id/assign", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleOfficial), controllers.AssignOfficial)
		issue.POST("/:id/comments", middlewares.AuthMiddleware(), controllers.AddComment)
		issue.POST("/:id/vote", middlewares.AuthMiddleware(), controllers.VoteIssue)
		issue.POST("/:id/complete", middlewares.AuthMiddleware(), controllers.CompleteIssue)
	}
}
