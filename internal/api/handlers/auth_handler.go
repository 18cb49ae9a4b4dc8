package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicehire/voicehire/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type googleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	result, err := h.auth.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse(result))
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
		"role":    user.Role,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.auth.RefreshToken(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse(result))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deleted, err := h.auth.Logout(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Logged out successfully",
		"sessions_deleted": deleted,
	})
}

func loginResponse(r *services.LoginResult) gin.H {
	return gin.H{
		"access_token": r.AccessToken,
		"token_type":   "bearer",
		"expires_at":   r.ExpiresAt,
		"user": gin.H{
			"id":      r.User.ID,
			"email":   r.User.Email,
			"name":    r.User.Name,
			"picture": r.User.Picture,
			"role":    r.User.Role,
		},
	}
}
