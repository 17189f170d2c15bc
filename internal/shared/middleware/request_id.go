package middleware

import (
	"library-backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDMaxLen giới hạn độ dài X-Request-ID từ client (tránh log injection)
const requestIDMaxLen = 64

// RequestID đọc X-Request-ID hoặc sinh UUID mới, set vào context và response header
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(shared.ContextKeyRequestID, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
