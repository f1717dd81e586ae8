// Package middleware carries the cross-cutting HTTP concerns of the listing
// API: request correlation, request logging, and panic containment. Everything
// here logs through zerolog so middleware output interleaves cleanly with the
// feed client's log lines.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the correlation ID between client and server.
const RequestIDHeader = "X-Request-ID"

// ctxRequestID is the echo context key the correlation ID is stored under.
const ctxRequestID = "request_id"

// RequestID propagates the caller's correlation ID, or mints a UUID when the
// request arrives without one. The ID is echoed back in the response header so
// a listing fetched by the frontend can be matched to its server log lines.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}

			c.Set(ctxRequestID, id)
			c.Response().Header().Set(RequestIDHeader, id)

			return next(c)
		}
	}
}

// GetRequestID returns the correlation ID for the current request, or an
// empty string outside the RequestID middleware.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(ctxRequestID).(string); ok {
		return id
	}
	return ""
}
