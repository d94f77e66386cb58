package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/v900meme-wq/room-api/metrics"
)

// Metrics đếm số request và đo thời gian xử lý cho Prometheus.
// Dùng FullPath (route pattern) thay vì URL thật để tránh nổ cardinality theo id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown" // route không khớp (404)
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
