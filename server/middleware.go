package server

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CharlieGitDB/database-studio/logger"
)

// requestLogger emits one structured log line per request.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request")
			return err
		}
	}
}

// recoverPanics converts handler panics into 500 responses instead of
// tearing down the listener.
func recoverPanics(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("panic", fmt.Sprintf("%v", r)).Msg("handler panicked")
					err = fail(c, 500, "INTERNAL", "internal server error")
				}
			}()
			return next(c)
		}
	}
}
