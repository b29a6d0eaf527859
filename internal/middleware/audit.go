package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/pkg/logger"
	"github.com/noah-isme/cemetery-console/pkg/middleware/requestid"
)

// Audit records every state-changing request with the operator that issued it.
// Reads are skipped.
func Audit(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		start := time.Now().UTC()
		c.Next()

		fields := []zap.Field{
			zap.String("user", c.GetString(logger.UsernameKey)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
		}
		if id := requestid.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if identity := CurrentIdentity(c); identity != nil {
			fields = append(fields, zap.String("role", identity.Role))
		}
		log.Info("audit", fields...)
	}
}
