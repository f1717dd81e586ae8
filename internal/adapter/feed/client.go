// Package feed fetches raw flight records from the upstream deal feed and
// normalizes them into domain flights.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/retry"
	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
)

// flightsPath is the feed's snapshot endpoint, relative to the base URL.
const flightsPath = "/api/flights"

// maxResponseBytes caps how much of a feed response is read. The snapshot is
// a few hundred records at most; anything larger is a broken upstream.
const maxResponseBytes = 16 << 20

// Client fetches the flight snapshot over HTTP and implements
// domain.FlightSource. Transient failures are retried with backoff; all
// failures surface as a domain.FeedError so callers can distinguish an
// unreachable feed from an empty one.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	normalizer *Normalizer
	retryCfg   retry.Config
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the retry policy used for fetches.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(c *Client) { c.retryCfg = cfg }
}

// WithClock replaces the clock used to stamp records that carry no
// last-seen timestamp.
func WithClock(clock timeutil.Clock) ClientOption {
	return func(c *Client) { c.normalizer = NewNormalizer(c.name, clock) }
}

// NewClient creates a feed client for the given base URL.
func NewClient(name, baseURL string, timeout time.Duration, logger zerolog.Logger, opts ...ClientOption) *Client {
	if name == "" {
		name = DefaultSource
	}
	c := &Client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		normalizer: NewNormalizer(name, nil),
		retryCfg:   retry.FeedConfig.WithRetryIf(retry.SkipPermanent),
		logger:     logger.With().Str("component", "feed_client").Str("source", name).Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements domain.FlightSource.
func (c *Client) Name() string {
	return c.name
}

// FetchFlights implements domain.FlightSource. It downloads the current
// snapshot, normalizes every record and returns the result. The returned
// error wraps domain.ErrFeedUnavailable when the feed could not be reached
// or answered with a failure status.
func (c *Client) FetchFlights(ctx context.Context) ([]domain.Flight, error) {
	start := time.Now()

	records, err := retry.DoWithResult(ctx, func() ([]Record, error) {
		return c.fetchRecords(ctx)
	}, c.retryCfg)
	if err != nil {
		c.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("feed fetch failed")
		return nil, domain.NewFeedError(c.name, err)
	}

	flights := c.normalizer.NormalizeAll(records)

	c.logger.Info().
		Int("records", len(records)).
		Int("flights", len(flights)).
		Dur("elapsed", time.Since(start)).
		Msg("feed snapshot fetched")

	return flights, nil
}

// fetchRecords performs a single snapshot download.
func (c *Client) fetchRecords(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+flightsPath, nil)
	if err != nil {
		return nil, retry.NewPermanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// client errors will not heal on retry
			return nil, retry.NewPermanent(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed response: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		// some feed deployments wrap the list in an envelope
		var envelope struct {
			Flights []Record `json:"flights"`
		}
		if envErr := json.Unmarshal(body, &envelope); envErr != nil || envelope.Flights == nil {
			return nil, retry.NewPermanent(fmt.Errorf("decode feed response: %w", err))
		}
		records = envelope.Flights
	}

	return records, nil
}
