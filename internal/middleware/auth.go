package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"medibook/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication. A request
// without a bearer token is rejected with 401; a token that is present but
// fails verification or has expired is rejected with 403.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.Forbidden(c, "Invalid token")
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set(utils.UserIDKey, claims.ID)
		c.Set(utils.UserEmailKey, claims.Email)

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireOwner rejects the request with 403 unless the path parameter param
// is the authenticated user's id. A malformed id never matches. It must run
// after AuthMiddleware.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		ownerID, err := ParseID(c.Param(param))
		if err != nil || ownerID != userID {
			utils.Forbidden(c, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(utils.UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok && id != 0
}

// ParseID parses a positive numeric path parameter.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
