package routes

import (
	"kwikwork/internal/controllers"
	"kwikwork/internal/middleware"
	"kwikwork/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterJobRoutes(router *gin.Engine, jobController *controllers.JobController) {
	jobRoutes := router.Group("/jobs")
	jobRoutes.Use(middleware.AuthMiddleware())
	{
		jobRoutes.POST("/", middleware.RequireRole(models.RoleEmployer), jobController.CreateJob)
		jobRoutes.GET("/mine", middleware.RequireRole(models.RoleEmployer), jobController.GetPostedJobs)
		jobRoutes.GET("/search", jobController.SearchJobs)
		jobRoutes.GET("/:id", jobController.GetJobByID)
	}
}
