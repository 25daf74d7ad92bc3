package middleware

import (
	"github.com/gin-gonic/gin"

	"pageforge.app/planner/common/id"
	"pageforge.app/planner/common/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns a correlation ID to every request, honoring one supplied
// by the caller. The ID rides the context's log fields so every log line for
// the request carries it, and is echoed in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = id.NewString()
		}

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: logger.Ptr(rid),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
