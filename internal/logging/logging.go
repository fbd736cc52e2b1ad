// Package logging builds the zap logger shared by the API and worker.
package logging

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a colourised development logger at debug level.
func New(production bool) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}

// ContextKey is where Middleware stores the request-scoped logger.
const ContextKey = "logger"

// Middleware attaches a request-scoped logger to the gin context and logs 5xx responses.
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		l := base.With(zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Set(ContextKey, l)
		c.Next()

		status := c.Writer.Status()
		if status < 500 && len(c.Errors) == 0 {
			return
		}
		fields := []zap.Field{zap.Int("status", status), zap.Duration("latency", time.Since(start))}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if status >= 500 {
			l.Error("request failed", fields...)
		} else {
			l.Warn("request error", fields...)
		}
	}
}

// From returns the request logger set by Middleware, or a no-op logger.
func From(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// Recovery logs panics through zap and answers 500.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		base.Error("panic recovered", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path), zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": ""})
	})
}
