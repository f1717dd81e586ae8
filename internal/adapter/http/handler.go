// Package http provides the HTTP handler layer for the listing API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/jetcheck/listing-engine/internal/adapter/http/response"
	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/display"
	"github.com/jetcheck/listing-engine/internal/usecase"
)

// ListingHandler handles HTTP requests for listing endpoints.
type ListingHandler struct {
	source          domain.FlightSource
	engine          *usecase.ListingEngine
	formatter       *display.Formatter
	defaultPageSize int
	maxPageSize     int
}

// NewListingHandler creates a ListingHandler.
func NewListingHandler(source domain.FlightSource, engine *usecase.ListingEngine, formatter *display.Formatter, defaultPageSize, maxPageSize int) *ListingHandler {
	return &ListingHandler{
		source:          source,
		engine:          engine,
		formatter:       formatter,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetListing handles GET /api/v1/listing.
//
// The listing is recomputed from the current feed snapshot on every request:
// filters, facets, sort and pagination all derive from the same snapshot and
// the same clock reading, so a response is always internally consistent.
func (h *ListingHandler) GetListing(c echo.Context) error {
	req, err := ParseListingRequest(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	if err := req.Validate(h.defaultPageSize, h.maxPageSize); err != nil {
		return h.handleValidationError(c, err)
	}
	req.ApplyPageReset()

	flights, err := h.source.FetchFlights(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	result := h.engine.Run(flights, req.FilterState(), req.SortState(), req.Page, req.PageSize)

	dto := ToListingResponseDTO(&result, req.SortState(), req.PageSize, h.formatter, h.engine.Clock().Now())
	return response.Listing(c, dto)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *ListingHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *ListingHandler) handleError(c echo.Context, err error) error {
	// Context errors first: a cancelled fetch also reports as a feed error.
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Check for unreachable feed
	if errors.Is(err, domain.ErrFeedUnavailable) {
		return response.ServiceUnavailable(c)
	}

	// Check for invalid request (domain validation)
	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Default to internal server error
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *ListingHandler) Health(c echo.Context) error {
	return response.Health(c)
}
