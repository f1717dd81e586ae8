package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// slowRequestThreshold flags listing requests that took noticeably longer
// than a warm feed fetch should. Cold fetches against a sluggish upstream are
// the usual culprit.
const slowRequestThreshold = 3 * time.Second

// RequestLogger logs one line per completed request. The filter query string
// is logged verbatim: for the listing endpoint it is the whole search state,
// and reproducing a reported bad page starts with replaying it. Probes of
// /health are logged at debug so they do not drown the listing traffic.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			req := c.Request()
			res := c.Response()
			status := res.Status

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = log.Error()
			case status >= 400 || elapsed >= slowRequestThreshold:
				event = log.Warn()
			case req.URL.Path == "/health":
				event = log.Debug()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Int64("duration_ms", elapsed.Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Msg("request served")

			// The error was already routed through c.Error above.
			return nil
		}
	}
}
