package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// The JSON API only reads niches and bodies and posts niche actions.
	allowedMethods  = "GET, POST, OPTIONS"
	// Calls are authenticated by the console session cookie, never by an Authorization header.
	allowedHeaders  = "Content-Type, X-Requested-With, X-Request-ID"
	preflightMaxAge = "600"
)

// New returns the CORS middleware of the console API. An empty origin list allows any
// origin. Allowed origins may send credentials so the session cookie travels along.
// Preflight requests are answered here and never reach the handlers.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := origin != "" && (allowAll || hasOrigin(originSet, origin))
		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				c.Writer.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				c.Writer.Header().Set("Access-Control-Max-Age", preflightMaxAge)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func hasOrigin(originSet map[string]struct{}, origin string) bool {
	_, ok := originSet[strings.TrimRight(origin, "/")]
	return ok
}
