package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestParseFlightStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlightStatus
	}{
		{name: "available passes through", raw: "available", want: StatusAvailable},
		{name: "legacy confirmed maps to available", raw: "confirmed", want: StatusAvailable},
		{name: "pending passes through", raw: "pending", want: StatusPending},
		{name: "unavailable passes through", raw: "unavailable", want: StatusUnavailable},
		{name: "case insensitive", raw: "AVAILABLE", want: StatusAvailable},
		{name: "surrounding whitespace trimmed", raw: "  pending  ", want: StatusPending},
		{name: "unrecognized maps to unknown", raw: "sold-out", want: StatusUnknown},
		{name: "empty maps to unknown", raw: "", want: StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFlightStatus(tt.raw))
		})
	}
}

func TestFlight_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		original *float64
		want     float64
	}{
		{name: "current price wins", current: floatPtr(990), original: floatPtr(4200), want: 990},
		{name: "falls back to original", current: nil, original: floatPtr(4200), want: 4200},
		{name: "no price is infinite", current: nil, original: nil, want: math.Inf(1)},
		{name: "zero current is still a price", current: floatPtr(0), original: floatPtr(4200), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flight{PriceCurrent: tt.current, PriceOriginal: tt.original}
			assert.Equal(t, tt.want, f.EffectivePrice())
		})
	}
}

func TestFlight_SavedAmount(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		original *float64
		want     float64
	}{
		{name: "positive saving", current: floatPtr(990), original: floatPtr(4200), want: 3210},
		{name: "negative saving clamps to zero", current: floatPtr(4200), original: floatPtr(990), want: 0},
		{name: "missing original is zero", current: floatPtr(990), original: nil, want: 0},
		{name: "missing current is zero", current: nil, original: floatPtr(4200), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flight{PriceCurrent: tt.current, PriceOriginal: tt.original}
			assert.Equal(t, tt.want, f.SavedAmount())
		})
	}
}

func TestFlight_SavedPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		original *float64
		want     int
	}{
		{name: "three quarters off", current: floatPtr(2990), original: floatPtr(11960), want: 75},
		{name: "rounds to nearest", current: floatPtr(1000), original: floatPtr(3000), want: 67},
		{name: "negative saving is zero", current: floatPtr(4200), original: floatPtr(990), want: 0},
		{name: "missing original is zero", current: floatPtr(990), original: nil, want: 0},
		{name: "zero original is zero", current: floatPtr(0), original: floatPtr(0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flight{PriceCurrent: tt.current, PriceOriginal: tt.original}
			assert.Equal(t, tt.want, f.SavedPercent())
		})
	}
}

func TestFlight_Labels(t *testing.T) {
	f := Flight{OriginCode: "IBZ", DestinationCode: "ZRH", OriginName: "Ibiza"}

	assert.Equal(t, "Ibiza", f.OriginLabel())
	// No name known: fall back to the code.
	assert.Equal(t, "ZRH", f.DestinationLabel())
}
