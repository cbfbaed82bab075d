package handlers

import (
	"MediCitas/middlewares"
	"MediCitas/services"
	"MediCitas/utils"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the admin and sets the auth cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	admin, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to log in"})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"username":     admin.Username,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout clears the auth cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	username, err := middlewares.ExtractAdminFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	var data struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), username, data.CurrentPassword, data.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to change password"})
		return
	}
	c.Status(200)
}

// ChangeEmail updates the reset-code address after re-verifying the
// current password.
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	username, err := middlewares.ExtractAdminFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	var data struct {
		CurrentPassword string `json:"current_password"`
		NewEmail        string `json:"new_email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.ChangeEmail(c.Request.Context(), username, data.CurrentPassword, data.NewEmail); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to change email"})
		return
	}
	c.Status(200)
}

// SendResetCode emails a reset code. It answers 200 even for unknown
// addresses so the endpoint does not reveal which email is registered.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.SendResetCode(c.Request.Context(), data.Email); err != nil {
		c.JSON(500, gin.H{"error": "Failed to send reset code"})
		return
	}
	c.Status(200)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), data.Email, data.Code, data.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidResetCode) {
			c.JSON(401, gin.H{"error": "Invalid reset code"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to reset password"})
		return
	}
	c.Status(200)
}
