// Package mock provides test doubles for the listing system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// Source is a configurable mock implementation of domain.FlightSource.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and feed failures.
type Source struct {
	name      string
	flights   []domain.Flight
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewSource creates a new mock source with the given name.
// The source is configured using the builder pattern methods.
func NewSource(name string) *Source {
	return &Source{
		name:    name,
		flights: nil,
		err:     nil,
		delay:   0,
	}
}

// WithFlights configures the source to return the given flights.
func (s *Source) WithFlights(flights []domain.Flight) *Source {
	s.flights = flights
	return s
}

// WithError configures the source to return the given error.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

// WithDelay configures the source to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.delay = d
	return s
}

// Name returns the source's unique identifier.
func (s *Source) Name() string {
	return s.name
}

// FetchFlights implements domain.FlightSource.FetchFlights.
// It respects context cancellation, applies configured delay,
// and returns configured flights or error.
func (s *Source) FetchFlights(ctx context.Context) ([]domain.Flight, error) {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	// Apply delay if configured
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	// Check context after delay
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Return configured error if set
	if s.err != nil {
		return nil, s.err
	}

	// Return configured flights
	return s.flights, nil
}

// CallCount returns the number of times FetchFlights was called.
// This is useful for verifying source interactions.
func (s *Source) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Reset resets the call count to zero.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Ensure Source implements domain.FlightSource at compile time.
var _ domain.FlightSource = (*Source)(nil)

// Route names for sample data. Paired as origin/destination cycles.
var sampleRoutes = []struct {
	originCode, originName, originTz string
	destCode, destName, destTz       string
}{
	{"GVA", "Geneva", "Europe/Zurich", "IBZ", "Ibiza", "Europe/Madrid"},
	{"LIN", "Milan Linate", "Europe/Rome", "PMI", "Palma de Mallorca", "Europe/Madrid"},
	{"VIE", "Vienna", "Europe/Vienna", "NCE", "Nice", "Europe/Paris"},
	{"CDG", "Paris Charles de Gaulle", "Europe/Paris", "LIS", "Lisbon", "Europe/Lisbon"},
}

// Sample aircraft labels cycled through sample flights.
var sampleAircraft = []string{
	"Citation Mustang",
	"Phenom 300",
	"Challenger 350",
}

// SampleFlights returns a slice of sample empty-leg flights for testing.
// The flights have all required fields populated with realistic values;
// departures step forward two hours at a time from the base instant.
func SampleFlights(source string, count int, base time.Time) []domain.Flight {
	flights := make([]domain.Flight, count)

	for i := 0; i < count; i++ {
		route := sampleRoutes[i%len(sampleRoutes)]
		departure := base.Add(time.Duration(i*2) * time.Hour)
		arrival := departure.Add(time.Hour + 35*time.Minute)
		current := 2990.0 + float64(i*500)
		original := current * 4

		flights[i] = domain.Flight{
			ID:              source + "-" + strconv.Itoa(i+1),
			OriginCode:      route.originCode,
			OriginName:      route.originName,
			OriginTz:        route.originTz,
			DestinationCode: route.destCode,
			DestinationName: route.destName,
			DestinationTz:   route.destTz,
			DepartureAt:     departure,
			DepartureRaw:    departure.Format(time.RFC3339),
			ArrivalAt:       arrival,
			Aircraft:        sampleAircraft[i%len(sampleAircraft)],
			PriceCurrent:    &current,
			PriceOriginal:   &original,
			Currency:        "EUR",
			Status:          domain.StatusAvailable,
			LastSeenAt:      base.Add(-30 * time.Minute),
			Link:            "https://example.com/deals/" + strconv.Itoa(i+1),
			Source:          source,
		}
	}

	return flights
}
