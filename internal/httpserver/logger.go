package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/kmalyshev/shopcart/internal/logging"
)

// LoggerIntoContext makes the process logger reachable from request
// contexts via logging.FromContext.
func LoggerIntoContext(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), l)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
