// Package http provides the HTTP handler layer for the listing API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// ListingRequest represents the query parameters of GET /api/v1/listing.
type ListingRequest struct {
	// FreeText is the free-text search over airport names and codes (q).
	FreeText string

	// Status filters by availability status (status).
	Status string

	// Origin filters by origin IATA code (origin).
	Origin string

	// Destination filters by destination IATA code (destination).
	Destination string

	// Date filters by departure day in YYYY-MM-DD format (date).
	Date string

	// MaxPrice filters out flights above this amount (max_price).
	MaxPrice string

	// Aircraft filters by aircraft label (aircraft).
	Aircraft string

	// Sort is the sort key: departure, price or seen (sort).
	Sort string

	// Dir is the sort direction: asc or desc (dir).
	Dir string

	// Page is the 1-based page number (page).
	Page int

	// PageSize is the number of cards per page (page_size).
	PageSize int

	// Prev is the fingerprint of the filter and sort state the client last
	// rendered (prev). When it no longer matches the current state the page
	// resets to 1, so changing any filter or the sort never strands the
	// client on an out-of-range page.
	Prev string
}

// Validation patterns.
var (
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	airportCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Valid status filter values: the statuses a listed flight can actually carry.
// Unavailable records are excluded outright, so that value is not selectable.
// Empty means no status filter.
var validStatuses = map[string]bool{
	"":          true,
	"available": true,
	"pending":   true,
	"unknown":   true,
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// ParseListingRequest reads and normalizes the listing query parameters.
// Numeric parameters that are absent parse to zero; Validate applies
// defaults and range checks.
func ParseListingRequest(c echo.Context) (*ListingRequest, error) {
	req := &ListingRequest{
		FreeText:    strings.TrimSpace(c.QueryParam("q")),
		Status:      strings.ToLower(strings.TrimSpace(c.QueryParam("status"))),
		Origin:      strings.TrimSpace(c.QueryParam("origin")),
		Destination: strings.TrimSpace(c.QueryParam("destination")),
		Date:        strings.TrimSpace(c.QueryParam("date")),
		MaxPrice:    strings.TrimSpace(c.QueryParam("max_price")),
		Aircraft:    strings.TrimSpace(c.QueryParam("aircraft")),
		Sort:        strings.ToLower(strings.TrimSpace(c.QueryParam("sort"))),
		Dir:         strings.ToLower(strings.TrimSpace(c.QueryParam("dir"))),
		Prev:        strings.TrimSpace(c.QueryParam("prev")),
	}

	errs := &ValidationErrors{}

	req.Page = parseIntParam(c, "page", errs)
	req.PageSize = parseIntParam(c, "page_size", errs)

	if errs.HasErrors() {
		return nil, errs
	}
	return req, nil
}

func parseIntParam(c echo.Context, name string, errs *ValidationErrors) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, name+" must be an integer")
		return 0
	}
	return v
}

// Validate checks the request parameters and applies defaults.
// defaultPageSize and maxPageSize come from configuration.
func (r *ListingRequest) Validate(defaultPageSize, maxPageSize int) error {
	errs := &ValidationErrors{}

	if !validStatuses[r.Status] {
		errs.Add("status", "status must be one of: available, pending, unavailable")
	}

	if r.Origin != "" {
		if !airportCodePattern.MatchString(r.Origin) {
			errs.Add("origin", "origin must be a 3-letter IATA airport code")
		} else {
			r.Origin = strings.ToUpper(r.Origin)
		}
	}

	if r.Destination != "" {
		if !airportCodePattern.MatchString(r.Destination) {
			errs.Add("destination", "destination must be a 3-letter IATA airport code")
		} else {
			r.Destination = strings.ToUpper(r.Destination)
		}
	}

	if r.Date != "" && !datePattern.MatchString(r.Date) {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if r.MaxPrice != "" {
		if v, err := strconv.ParseFloat(r.MaxPrice, 64); err != nil || v <= 0 {
			errs.Add("max_price", "max_price must be a positive number")
		}
	}

	if r.Sort != "" && !domain.SortKey(r.Sort).IsValid() {
		errs.Add("sort", "sort must be one of: departure, price, seen")
	}

	if r.Dir != "" && !domain.SortDirection(r.Dir).IsValid() {
		errs.Add("dir", "dir must be asc or desc")
	}

	if r.Page < 0 {
		errs.Add("page", "page must be positive")
	}
	if r.Page == 0 {
		r.Page = 1
	}

	if r.PageSize < 0 || r.PageSize > maxPageSize {
		errs.Add("page_size", "page_size must be between 1 and "+strconv.Itoa(maxPageSize))
	}
	if r.PageSize == 0 {
		r.PageSize = defaultPageSize
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// FilterState converts the request to the engine's filter state.
func (r *ListingRequest) FilterState() domain.FilterState {
	return domain.FilterState{
		Status:          r.Status,
		OriginCode:      r.Origin,
		DestinationCode: r.Destination,
		Date:            r.Date,
		MaxPrice:        r.MaxPrice,
		Aircraft:        r.Aircraft,
		FreeText:        r.FreeText,
	}
}

// SortState converts the request to the engine's sort state.
func (r *ListingRequest) SortState() domain.SortState {
	return domain.SortState{
		Key:       domain.ParseSortKey(r.Sort),
		Direction: domain.ParseSortDirection(r.Dir),
	}
}

// Fingerprint hashes the filter and sort state. Clients echo it back via the
// prev parameter; a mismatch means the filters or sort changed since the
// page they are asking for was computed.
func (r *ListingRequest) Fingerprint() string {
	return StateFingerprint(r.FilterState(), r.SortState())
}

// StateFingerprint hashes a filter and sort state into a short opaque token.
func StateFingerprint(filter domain.FilterState, sort domain.SortState) string {
	fields := []string{
		filter.FreeText, filter.Status, filter.OriginCode, filter.DestinationCode,
		filter.Date, filter.MaxPrice, filter.Aircraft,
		string(sort.Key), string(sort.Direction),
	}
	sum := sha1.Sum([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(sum[:6])
}

// ApplyPageReset resets the page to 1 when the filter or sort state no
// longer matches the fingerprint the client last saw. Call after Validate.
func (r *ListingRequest) ApplyPageReset() {
	if r.Prev != "" && r.Prev != r.Fingerprint() {
		r.Page = 1
	}
}
