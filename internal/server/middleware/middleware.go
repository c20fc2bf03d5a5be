// Package middleware provides gin middleware for request logging and panic recovery.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/logfields"
	"git.home.luguber.info/inful/devlog/internal/server/responses"
)

// Logging logs method, path, status and duration of every request.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			logfields.Method(c.Request.Method),
			logfields.Path(c.Request.URL.Path),
			logfields.Status(c.Writer.Status()),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
			slog.String("remote_addr", c.ClientIP()))
	}
}

// Recovery turns a handler panic into a structured 500 response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("HTTP handler panic",
					"error", rec,
					logfields.Path(c.Request.URL.Path),
					logfields.Method(c.Request.Method))
				err := ferrors.InternalError("internal server error").
					WithContext("path", c.Request.URL.Path).
					Build()
				responses.SendClassified(c, err)
			}
		}()
		c.Next()
	}
}
