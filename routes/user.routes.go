package routes

import (
	"kwikwork/internal/controllers"
	"kwikwork/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutesPublic := router.Group("/users")
	{
		userRoutesPublic.POST("/", userController.CreateUser)
		userRoutesPublic.POST("/login", userController.LoginUser)
		userRoutesPublic.POST("/forgot-password", userController.ForgotPassword)
		userRoutesPublic.POST("/reset-password", userController.ResetPassword)
	}
	userRoutesPrivate := router.Group("/users")
	userRoutesPrivate.Use(middleware.AuthMiddleware())
	{
		userRoutesPrivate.GET("/me", userController.GetCurrentUser)
		userRoutesPrivate.PATCH("/me", userController.PatchUser)
		userRoutesPrivate.POST("/me/profile-pic", userController.UploadProfilePic)
		userRoutesPrivate.GET("/seekers/:user_number", userController.GetSeekerDetails)
	}
}
