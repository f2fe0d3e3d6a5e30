package server

import (
	"strings"
	"time"

	"sealed-auction/services/auction/handler"
	"sealed-auction/utils"

	"github.com/gin-gonic/gin"
)

const (
	// CallerIDHeader carries the caller identity, set by the upstream authentication layer
	CallerIDHeader = "X-Bidder-ID"
	// RequestIDHeader echoes a per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Header(RequestIDHeader, requestID)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"caller":     c.GetString(handler.CallerIDKey),
		"latency":    time.Since(start).String(),
	})
}

// CallerIdentityMiddleware stores the already-authenticated caller identity
// in the request context
func CallerIdentityMiddleware(c *gin.Context) {
	c.Set(handler.CallerIDKey, strings.TrimSpace(c.GetHeader(CallerIDHeader)))
	c.Next()
}
