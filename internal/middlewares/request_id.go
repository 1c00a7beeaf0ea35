package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller-supplied X-Request-ID or generates a fresh one,
// storing it in the context and echoing it on the response.
func RequestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set("requestId", id)
	c.Writer.Header().Set(RequestIDHeader, id)

	c.Next()
}
