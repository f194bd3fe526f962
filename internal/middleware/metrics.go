package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/autoservice-booking-api/internal/service"
)

// unmatchedRoute labels requests that hit no route so arbitrary URLs cannot
// inflate label cardinality.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per method, route pattern and status.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
