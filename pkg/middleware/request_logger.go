package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one zerolog line per request. Run it after
// TraceIDMiddleware so the trace id is available.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}
		evt.Str("trace_id", c.GetString("trace_id")).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
