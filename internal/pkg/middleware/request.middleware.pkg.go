package middleware

import (
	"delegasi-pay/internal/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const HeaderRequestID = "X-Request-ID"

// RequestInit tags every request with an id and logs it when done.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			if id, err := gonanoid.New(); err == nil {
				requestID = id
			}
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		logger.HTTP.Printf("%s %s %d %s id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			requestID,
		)
	}
}
