package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request including request_id, caller role and
// the storage backend a write landed in.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		role := string(GetCaller(c).Role)
		if role == "" {
			role = "-"
		}
		backend := c.Writer.Header().Get("X-Storage-Backend")
		if backend == "" {
			backend = "-"
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f role=%s backend=%s ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			role,
			backend,
			c.ClientIP(),
		)
	}
}
