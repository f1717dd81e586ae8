// Package response is the single place the listing API's wire shapes are
// written from. A successful listing call answers with the result payload
// itself; failures answer with a flat ErrorDetail. Handlers never build
// response bodies by hand, so the frontend sees one error shape no matter
// which layer refused the request.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail is the body of every non-2xx answer the API gives.
type ErrorDetail struct {
	// Code is the machine-readable reason, from the constants below.
	Code string `json:"code"`

	// Message is safe to show to a person.
	Message string `json:"message"`

	// Details maps query parameters to what was wrong with them, on
	// validation failures only.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes the API answers with.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidationError    = "validation_error"
	CodeServiceUnavailable = "service_unavailable"
	CodeTimeout            = "timeout"
	CodeInternalError      = "internal_error"
)

// Stock messages for the errors that carry no caller-specific detail.
const (
	MsgValidationFailed   = "Request validation failed"
	MsgServiceUnavailable = "The flight feed is currently unavailable"
	MsgTimeout            = "Request timed out"
	MsgRequestCancelled   = "Request was cancelled"
	MsgInternalError      = "An unexpected error occurred"
)

// Listing writes the listing page as the whole response body.
func Listing(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}

// HealthResponse is the body of a health probe answer.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health answers a liveness probe.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{Status: "ok"})
}
