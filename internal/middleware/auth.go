package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"syndic-be-svc/pkg/utils"
)

// UserIDKey is the gin context key under which the authenticated user's
// id is stored.
const UserIDKey = "user_id"

// Auth verifies the Bearer token and places the actor's user id in the
// request context. Requests without a valid token are rejected with a 401
// envelope; handlers behind this middleware can rely on UserIDKey being set.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid token claims")
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(UserIDKey, uint(sub))
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the gin context
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
