package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// testNow is the fixed "now" used across predicate tests.
var testNow = time.Date(2025, 8, 9, 10, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64 { return &f }

// createPredicateFlight creates an available flight departing at the given
// hours offset from testNow.
func createPredicateFlight(id, origin, dest string, depOffsetHours int) domain.Flight {
	dep := testNow.Add(time.Duration(depOffsetHours) * time.Hour)
	return domain.Flight{
		ID:              id,
		OriginCode:      origin,
		OriginName:      origin + " Airport",
		DestinationCode: dest,
		DestinationName: dest + " Airport",
		DepartureAt:     dep,
		DepartureRaw:    dep.Format("2006-01-02T15:04:05Z"),
		Currency:        "EUR",
		Status:          domain.StatusAvailable,
	}
}

func TestMatches_EmptyStateIncludesUpcoming(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	assert.True(t, Matches(f, domain.FilterState{}, testNow))
}

func TestMatches_UnavailableAlwaysExcluded(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	f.Status = domain.StatusUnavailable

	// Excluded with no filter at all
	assert.False(t, Matches(f, domain.FilterState{}, testNow))

	// Excluded even when the user filters for unavailable explicitly
	assert.False(t, Matches(f, domain.FilterState{Status: "unavailable"}, testNow))
}

func TestMatches_DepartedFlightsExcluded(t *testing.T) {
	departed := createPredicateFlight("1", "IBZ", "ZRH", -1)
	assert.False(t, Matches(departed, domain.FilterState{}, testNow))

	// A missing departure does NOT exclude
	unknown := createPredicateFlight("2", "IBZ", "ZRH", 2)
	unknown.DepartureAt = time.Time{}
	unknown.DepartureRaw = ""
	assert.True(t, Matches(unknown, domain.FilterState{}, testNow))
}

func TestMatches_StatusFilter(t *testing.T) {
	pending := createPredicateFlight("1", "IBZ", "ZRH", 2)
	pending.Status = domain.StatusPending

	assert.True(t, Matches(pending, domain.FilterState{Status: "pending"}, testNow))
	assert.True(t, Matches(pending, domain.FilterState{Status: "PENDING"}, testNow))
	assert.False(t, Matches(pending, domain.FilterState{Status: "available"}, testNow))
}

func TestMatches_AirportFilters(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)

	tests := []struct {
		name  string
		state domain.FilterState
		want  bool
	}{
		{name: "origin match", state: domain.FilterState{OriginCode: "IBZ"}, want: true},
		{name: "origin match is case-insensitive", state: domain.FilterState{OriginCode: "ibz"}, want: true},
		{name: "origin mismatch", state: domain.FilterState{OriginCode: "ZRH"}, want: false},
		{name: "destination match", state: domain.FilterState{DestinationCode: "ZRH"}, want: true},
		{name: "destination mismatch", state: domain.FilterState{DestinationCode: "IBZ"}, want: false},
		{name: "both match", state: domain.FilterState{OriginCode: "IBZ", DestinationCode: "ZRH"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(f, tt.state, testNow))
		})
	}
}

func TestMatches_DateFilter_UTCSlice(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	f.DepartureRaw = "2025-08-09T12:00:00Z"

	assert.True(t, Matches(f, domain.FilterState{Date: "2025-08-09"}, testNow))
	assert.False(t, Matches(f, domain.FilterState{Date: "2025-08-10"}, testNow))

	// The comparison is the raw-string prefix: a record whose raw timestamp is
	// too short to carry a date never matches a set date filter.
	f.DepartureRaw = "2025"
	assert.False(t, Matches(f, domain.FilterState{Date: "2025-08-09"}, testNow))
}

func TestMatches_MaxPrice(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		original *float64
		maxPrice string
		want     bool
	}{
		{name: "under ceiling", current: floatPtr(990), maxPrice: "1000", want: true},
		{name: "at ceiling", current: floatPtr(1000), maxPrice: "1000", want: true},
		{name: "over ceiling", current: floatPtr(1290), maxPrice: "1000", want: false},
		{name: "falls back to original price", original: floatPtr(800), maxPrice: "1000", want: true},
		{name: "no price at all exceeds every ceiling", maxPrice: "500", want: false},
		{name: "non-numeric ceiling is treated as unset", maxPrice: "cheap", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createPredicateFlight("1", "IBZ", "ZRH", 2)
			f.PriceCurrent = tt.current
			f.PriceOriginal = tt.original

			got := Matches(f, domain.FilterState{MaxPrice: tt.maxPrice}, testNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_AircraftFilter(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	f.Aircraft = "Citation Mustang"

	assert.True(t, Matches(f, domain.FilterState{Aircraft: "Citation Mustang"}, testNow))
	assert.True(t, Matches(f, domain.FilterState{Aircraft: "  Citation Mustang  "}, testNow))
	assert.False(t, Matches(f, domain.FilterState{Aircraft: "Phenom 300"}, testNow))

	// An unset aircraft never matches a set filter
	f.Aircraft = ""
	assert.False(t, Matches(f, domain.FilterState{Aircraft: "Citation Mustang"}, testNow))
}

func TestMatches_FreeText(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	f.OriginName = "Ibiza"
	f.DestinationName = "Zurich"

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "origin name substring", query: "ibi", want: true},
		{name: "destination name substring", query: "zurich", want: true},
		{name: "origin code", query: "ibz", want: true},
		{name: "destination code lowercased", query: "zrh", want: true},
		{name: "case-insensitive", query: "ZURICH", want: true},
		{name: "no hit anywhere", query: "geneva", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(f, domain.FilterState{FreeText: tt.query}, testNow))
		})
	}
}

func TestMatches_RulesAreANDCombined(t *testing.T) {
	f := createPredicateFlight("1", "IBZ", "ZRH", 2)
	f.PriceCurrent = floatPtr(990)

	pass := domain.FilterState{OriginCode: "IBZ", MaxPrice: "1000", FreeText: "zrh"}
	assert.True(t, Matches(f, pass, testNow))

	// One failing rule flips the whole predicate
	fail := pass
	fail.MaxPrice = "500"
	assert.False(t, Matches(f, fail, testNow))
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	flights := []domain.Flight{
		createPredicateFlight("1", "IBZ", "ZRH", 2),
		createPredicateFlight("2", "ZRH", "IBZ", 50),
		createPredicateFlight("3", "GVA", "NCE", -3),
	}
	snapshot := make([]domain.Flight, len(flights))
	copy(snapshot, flights)

	result := ApplyFilters(flights, domain.FilterState{OriginCode: "IBZ"}, testNow)

	assert.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, snapshot, flights)
}
