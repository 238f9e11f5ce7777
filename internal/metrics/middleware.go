package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Middleware collects HTTP request metrics. The route pattern is used as
// the path label so query strings and ids do not explode cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method

			RequestInProgress.WithLabelValues(method, path).Inc()
			defer RequestInProgress.WithLabelValues(method, path).Dec()

			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the error response so the status is final
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			RequestCounter.WithLabelValues(status, method, path).Inc()
			RequestDuration.WithLabelValues(status, method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
