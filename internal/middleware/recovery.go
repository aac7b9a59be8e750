package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

// Recovery turns a panic into a 500 problem body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
			"panic", recovered,
		)
		response.InternalServerError(c)
	})
}
