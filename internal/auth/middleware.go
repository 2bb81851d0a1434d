package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the gin context key the middleware stores the
// authenticated user's ID under.
const ContextUserID = "pocketledger-user-id"

// Middleware verifies the bearer token of the request and stores the
// user ID it was issued for in the context. Requests without a valid
// token are rejected with 401.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		userID, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context. It is
// only valid behind the Middleware.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uuid.UUID)
	return userID
}
