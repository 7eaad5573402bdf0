package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", TraceIDHeader}
	cfg.ExposeHeaders = []string{TraceIDHeader}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
