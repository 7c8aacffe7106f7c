package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request. Query strings and bodies are left out
// since estimate and login payloads carry customer details.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "-"
		}
		user := c.GetString(userIDKey)
		if user == "" {
			user = "-"
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s route=%s status=%d bytes=%d latency_ms=%.3f user=%s ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			route,
			c.Writer.Status(),
			c.Writer.Size(),
			float64(time.Since(start).Microseconds())/1000.0,
			user,
			c.ClientIP(),
		)
	}
}
