package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jetcheck/listing-engine/internal/adapter/http/response"
)

// Recover contains panics from the handler chain so one poisoned feed record
// cannot take the listing endpoint down with it. The panic is logged with its
// stack and the client gets the API's standard internal-error body, never the
// panic value itself.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					var msg string
					if err, ok := r.(error); ok {
						msg = err.Error()
					} else {
						msg = fmt.Sprintf("%v", r)
					}

					log.Error().
						Str("request_id", GetRequestID(c)).
						Str("path", c.Request().URL.Path).
						Str("panic", msg).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")

					if !c.Response().Committed {
						response.InternalServerError(c)
					}
				}
			}()

			return next(c)
		}
	}
}
