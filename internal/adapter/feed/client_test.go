package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/retry"
)

const snapshotJSON = `[
	{
		"id": "deal-1",
		"origin_iata": "GVA",
		"origin_name": "Geneva",
		"destination_iata": "IBZ",
		"destination_name": "Ibiza",
		"departure_ts": "2025-08-10T14:30:00Z",
		"price_current": 2990,
		"currency": "EUR",
		"status": "available"
	},
	{
		"route": "LIN -> PMI",
		"date": "2025-08-11",
		"time": "09:00 - 10:45",
		"price": "9,900"
	}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]ClientOption{
		WithRetryConfig(retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2.0,
			RetryIf:      retry.SkipPermanent,
		}),
	}, opts...)

	return NewClient("test_feed", server.URL, 2*time.Second, zerolog.Nop(), opts...), server
}

func TestClient_Name(t *testing.T) {
	c := NewClient("test_feed", "http://localhost", time.Second, zerolog.Nop())
	assert.Equal(t, "test_feed", c.Name())
}

func TestClient_ImplementsFlightSource(t *testing.T) {
	var _ domain.FlightSource = (*Client)(nil)
}

func TestClient_FetchFlights_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, flightsPath, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(snapshotJSON))
	})

	flights, err := c.FetchFlights(context.Background())

	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, "deal-1", flights[0].ID)
	assert.Equal(t, "GVA", flights[0].OriginCode)
	assert.Equal(t, "LIN", flights[1].OriginCode)
	require.NotNil(t, flights[1].PriceCurrent)
	assert.Equal(t, 9900.0, *flights[1].PriceCurrent)
}

func TestClient_FetchFlights_EnvelopePayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flights": ` + snapshotJSON + `}`))
	})

	flights, err := c.FetchFlights(context.Background())

	require.NoError(t, err)
	assert.Len(t, flights, 2)
}

func TestClient_FetchFlights_EmptySnapshot(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	flights, err := c.FetchFlights(context.Background())

	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestClient_FetchFlights_RetriesServerErrors(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(snapshotJSON))
	})

	flights, err := c.FetchFlights(context.Background())

	require.NoError(t, err)
	assert.Len(t, flights, 2)
	assert.Equal(t, int32(3), calls)
}

func TestClient_FetchFlights_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FetchFlights(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
	assert.Equal(t, int32(1), calls)
}

func TestClient_FetchFlights_MalformedPayloadNotRetried(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"not": "a snapshot"}`))
	})

	_, err := c.FetchFlights(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
	assert.Equal(t, int32(1), calls)
}

func TestClient_FetchFlights_FeedDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClient("test_feed", server.URL, time.Second, zerolog.Nop(),
		WithRetryConfig(retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond}))

	_, err := c.FetchFlights(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)

	var feedErr *domain.FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, "test_feed", feedErr.Source)
}

func TestClient_FetchFlights_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchFlights(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
