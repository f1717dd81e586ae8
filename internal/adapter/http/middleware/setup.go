package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup installs the middleware chain on the server. RequestID runs first so
// every log line a request produces carries its correlation ID; the logger
// sits outside Recover so a panicked request is still logged with the 500 it
// produced.
func Setup(e *echo.Echo, log zerolog.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
}
