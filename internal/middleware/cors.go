package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows browser clients from the given origins. A lone "*"
// allows any origin.
func CORSMiddleware(allowOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", idempotencyHeader)
	return cors.New(config)
}
