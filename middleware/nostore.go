package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoStore marks responses as uncacheable. Every dashboard session reads a
// fresh snapshot, so a cached report would show stale rows.
func NoStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			return next(c)
		}
	}
}
