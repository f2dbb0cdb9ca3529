package middleware

import (
	"fmt"
	"time"

	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func Logging(log logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()
		requestID := c.GetString(RequestIDCtx)

		msg := fmt.Sprintf("%s %s", method, path)

		log.Info(msg,
			"status", status,
			"latency", latency,
			"client_ip", clientIP,
			"request_id", requestID,
		)

		for _, ginErr := range c.Errors {
			log.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", method,
				"path", path,
				"request_id", requestID,
			)
		}
	}
}
