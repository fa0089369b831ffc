package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/almadepapel/storefront/internal/logging"
)

// RequestLogger attaches a per-request logger to the context and emits one
// http_request line once the response is written. The log level follows the
// response class.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"path", req.URL.Path,
				"ip", c.RealIP(),
			)
			if rid := req.Header.Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := c.Response().Status
			args := []any{
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
				"bytes", c.Response().Size,
			}
			switch {
			case status >= 500:
				if err != nil {
					args = append(args, "error", err)
				}
				l.Error("http_request", args...)
			case status >= 400:
				l.Warn("http_request", args...)
			default:
				l.Info("http_request", args...)
			}
			return nil
		}
	}
}
