package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/services"
	"github.com/voicehire/voicehire/internal/utils"
)

// writeError maps an AppError to its HTTP status. Internal errors never leak
// their message to the client.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	msg := "internal server error"
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" && status < http.StatusInternalServerError {
		msg = ae.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// actorFrom reads the identity the JWT middleware stored on the context.
// Unauthenticated routes yield a zero Actor.
func actorFrom(c *gin.Context) services.Actor {
	a := services.Actor{}
	if v, ok := c.Get("user_id"); ok {
		a.UserID, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			a.Role = models.UserRole(s)
		}
	}
	if v, ok := c.Get("email"); ok {
		a.Email, _ = v.(string)
	}
	return a
}

func requireUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	id, _ := v.(string)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return id, true
}
