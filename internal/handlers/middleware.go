package handlers

import (
	"net/http"
	"strings"

	"fuel_pump_registry/internal/models"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by principalMiddleware.
const (
	ctxPrincipal = "principal"
	ctxUserID    = "userId"
)

func (h *Handler) principalMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	principal, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxPrincipal, principal)
	c.Set(ctxUserID, principal.UserID)
	c.Next()
}

// principalFrom returns the caller stored by principalMiddleware.
func principalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
