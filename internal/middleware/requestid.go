package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header request IDs are read from and echoed to.
const RequestIDHeader = "X-Request-ID"

const contextRequestIDKey = "requestID"

// RequestID attaches a request ID to every request, honoring an incoming
// X-Request-ID header and generating one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the request ID attached to the context, or "".
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(contextRequestIDKey)
}
