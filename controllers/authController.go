package controllers

import (
	"MediCitas/handlers"
	"MediCitas/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler.
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no session required.
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/reset-password", ac.Handler.ResetPassword)

	// Protected routes: requires a valid admin token.
	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.POST("/logout", ac.Handler.Logout)
		authGroup.POST("/change-password", ac.Handler.ChangePassword)
		authGroup.POST("/change-email", ac.Handler.ChangeEmail)
	}
}
