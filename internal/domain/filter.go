package domain

import (
	"math"
	"strconv"
	"strings"
)

// FilterState holds the user-selected listing filters. Every field is optional;
// an empty string means the dimension is unset. The state is an explicit value
// passed into the query engine on every run — the engine never reads ambient
// state, so identical inputs always yield identical listings.
type FilterState struct {
	// Status restricts the listing to one availability state.
	Status string `json:"status,omitempty"`

	// OriginCode restricts the listing to one departure airport (IATA code).
	OriginCode string `json:"originCode,omitempty"`

	// DestinationCode restricts the listing to one arrival airport (IATA code).
	DestinationCode string `json:"destinationCode,omitempty"`

	// Date restricts the listing to one calendar day in YYYY-MM-DD form.
	// The comparison is against the UTC-sliced first ten characters of the raw
	// departure timestamp. A flight just after local midnight in a
	// negative-offset zone therefore mismatches the selected date; this is the
	// preserved legacy contract, not the civil date in the flight's own zone.
	Date string `json:"date,omitempty"`

	// MaxPrice is the raw price ceiling as the user typed it. A value that does
	// not parse to a finite number is treated as unset rather than excluding
	// everything.
	MaxPrice string `json:"maxPrice,omitempty"`

	// Aircraft requires an exact (trimmed) aircraft label match.
	Aircraft string `json:"aircraft,omitempty"`

	// FreeText is matched case-insensitively as a substring against airport
	// names and codes.
	FreeText string `json:"freeText,omitempty"`
}

// IsZero reports whether no filter dimension is set.
func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

// MaxPriceValue parses the price ceiling. The second return is false when the
// ceiling is unset or not a finite number.
func (s FilterState) MaxPriceValue() (float64, bool) {
	raw := strings.TrimSpace(s.MaxPrice)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// WithoutOrigin returns a copy of the state with the origin selection cleared.
// Facet computation uses it so the current origin never excludes itself from
// its own option list.
func (s FilterState) WithoutOrigin() FilterState {
	s.OriginCode = ""
	return s
}

// WithoutDestination returns a copy with the destination selection cleared.
func (s FilterState) WithoutDestination() FilterState {
	s.DestinationCode = ""
	return s
}

// WithoutAircraft returns a copy with the aircraft selection cleared.
func (s FilterState) WithoutAircraft() FilterState {
	s.Aircraft = ""
	return s
}
