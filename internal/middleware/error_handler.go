package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"syndic-be-svc/pkg/utils"
)

// ErrorHandler recovers from panics and turns them into a generic 500
// envelope so no request ever escapes without a structured response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.APIResponse{
					Success: false,
					Message: "Internal server error",
					Error:   "an unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}

// NoRouteHandler handles requests to unknown routes
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route not found")
	}
}

// NoMethodHandler handles requests with unsupported methods
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, utils.APIResponse{
			Success: false,
			Message: "Method not allowed",
			Error:   "method not allowed",
		})
	}
}
