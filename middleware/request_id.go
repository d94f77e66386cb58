package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID gắn một request id duy nhất cho mỗi request,
// trả về trong header để client đối chiếu khi báo lỗi.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		c.Request.Header.Set("X-Request-ID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set(CtxRequestID, requestID)

		c.Next()
	}
}
