// Package integration provides helpers and integration tests for the listing system.
// Integration tests verify that components work together correctly, including
// the HTTP handler, the listing engine, and mock feed sources.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	httpAdapter "github.com/jetcheck/listing-engine/internal/adapter/http"
	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/display"
	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
	"github.com/jetcheck/listing-engine/internal/usecase"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// Now is the frozen clock reading that all integration tests share.
var Now = time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.ListingHandler
	Engine  *usecase.ListingEngine
}

// NewTestServer creates a test server backed by the given feed source,
// with a clock frozen at Now and an English formatter in the Zurich timezone.
func NewTestServer(source domain.FlightSource) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	engine := usecase.NewListingEngine(&usecase.Config{
		Clock:  timeutil.NewMockClock(Now),
		Locale: language.English,
	})
	formatter := display.NewFormatter(language.English, timeutil.NewResolver(timeutil.MustGetLocation("Europe/Zurich")))

	handler := httpAdapter.NewListingHandler(source, engine, formatter, defaultPageSize, maxPageSize)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
		Engine:  engine,
	}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Get executes a GET request against the given path and returns the response.
func (ts *TestServer) Get(path string) Response {
	httpReq := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// ListingRequest makes a listing request with the given query parameters.
func (ts *TestServer) ListingRequest(params map[string]string) Response {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	path := "/api/v1/listing"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return ts.Get(path)
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Get("/health")
}

// ParseListing parses the response body as a listing response.
func (r *Response) ParseListing() (*httpAdapter.ListingResponseDTO, error) {
	var dto httpAdapter.ListingResponseDTO
	if err := json.Unmarshal(r.Body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}
