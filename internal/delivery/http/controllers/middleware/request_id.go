package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID attaches a correlation id to every request so that log lines from
// one request can be tied together.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(RequestIDCtx, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
