package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CorrelationIDHeader carries the per-request correlation identifier.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "filehubCorrelationID"

// Init builds the application logger. LOG_LEVEL selects the minimum level.
func Init() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	return cfg.Build()
}

// Middleware assigns a correlation ID to every request and logs its outcome.
func Middleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationIDKey, id)
		c.Writer.Header().Set(CorrelationIDHeader, id)

		start := time.Now()
		c.Next()

		if log != nil {
			log.Info("request",
				zap.String("correlation_id", id),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}
}

// CorrelationID returns the correlation ID assigned to the request, if any.
func CorrelationID(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
