package routes

import (
	"kwikwork/internal/controllers"
	"kwikwork/internal/middleware"
	"kwikwork/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterApplicationRoutes(router *gin.Engine, applicationController *controllers.ApplicationController) {
	router.POST("/jobs/:id/applications",
		middleware.AuthMiddleware(),
		middleware.RequireRole(models.RoleSeeker),
		applicationController.SubmitApplication)

	applicationRoutes := router.Group("/applications")
	applicationRoutes.Use(middleware.AuthMiddleware())
	{
		applicationRoutes.GET("/mine", middleware.RequireRole(models.RoleSeeker), applicationController.GetMyApplications)
		applicationRoutes.GET("/pending", middleware.RequireRole(models.RoleEmployer), applicationController.GetPendingApplicants)
		applicationRoutes.POST("/:id/approve", middleware.RequireRole(models.RoleEmployer), applicationController.ApproveApplication)
		applicationRoutes.POST("/:id/reject", middleware.RequireRole(models.RoleEmployer), applicationController.RejectApplication)
	}
}
