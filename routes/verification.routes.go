package routes

import (
	"kwikwork/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterVerificationRoutes(router *gin.Engine, verificationController *controllers.VerificationController) {
	verificationRoutes := router.Group("/verify")
	{
		verificationRoutes.POST("/send", verificationController.SendVerificationCode)
		verificationRoutes.POST("/", verificationController.VerifyCode)
		verificationRoutes.POST("/resend", verificationController.ResendVerificationCode)
	}
}
