package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"deepti.app/relay/internal/http/dto"
	"deepti.app/relay/internal/model"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler into the relay's 500 error body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: model.RelayFailure})
			}
		}()
		c.Next()
	}
}

// Logger logs one line per request after the handler has run.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(ctx, "http request", attrs...)
		case status >= http.StatusBadRequest:
			slog.WarnContext(ctx, "http request", attrs...)
		default:
			slog.InfoContext(ctx, "http request", attrs...)
		}
	}
}
