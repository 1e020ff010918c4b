package middleware

import (
	"github.com/armii/platform-admin/pkg/state"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// ClaimIp records the client address on the gin context and on the request
// context so services can log it.
func ClaimIp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		c.Set(state.CurrentUserIP, ip)
		c.Request = c.Request.WithContext(state.SetClientIP(c.Request.Context(), ip))
		c.Next()
	}
}

// RequestID reuses the caller's X-Request-ID or assigns a new one and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(state.CurrentRequestID, id)
		c.Request = c.Request.WithContext(state.SetRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
