package handlers

import (
	"errors"
	"net/http"
	"strings"

	"devconnect/internal/service"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key the middleware stores the verified
// identity under.
const userIDKey = "userId"

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": tokenErrorMessage(err),
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userID)
	c.Next()
}

// tokenErrorMessage gives a reason-specific message without leaking
// verification internals.
func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, service.ErrTokenMalformed):
		return "token malformed"
	default:
		return "invalid token"
	}
}

// callerID returns the verified user id set by authMiddleware.
func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
