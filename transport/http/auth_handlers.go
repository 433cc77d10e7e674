package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/service"
)

// AuthHandlers contains HTTP handlers for gateway bearer tokens
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Revoke invalidates the bearer token the request was made with
func (h *AuthHandlers) Revoke(c *gin.Context) {
	token := c.GetString(bearerKey)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		return
	}

	if err := h.authService.Revoke(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, core.ErrTokenExpired):
			c.JSON(http.StatusOK, gin.H{"message": "Revoked"})
		case errors.Is(err, core.ErrRevocationUnavailable):
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Revocation is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Revoked"})
}

// Me returns the caller the bearer token was issued to
func (h *AuthHandlers) Me(c *gin.Context) {
	caller, ok := GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Caller not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         caller.ID,
		"subject":    caller.Subject,
		"issued_at":  caller.IssuedAt.UTC(),
		"expires_at": caller.ExpiresAt.UTC(),
	})
}
