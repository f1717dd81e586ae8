// Package domain contains the core business entities and rules for the empty-leg
// listing system. These entities are feed-agnostic and form the foundation upon
// which all other components are built.
package domain

import (
	"math"
	"strings"
	"time"
)

// FlightStatus is the normalized availability state of an empty-leg offer.
type FlightStatus string

// Known flight statuses. Anything else the feed reports normalizes to StatusUnknown.
const (
	// StatusAvailable means the leg is bookable at the listed price.
	StatusAvailable FlightStatus = "available"

	// StatusPending means the leg is advertised but not yet confirmed.
	StatusPending FlightStatus = "pending"

	// StatusUnavailable means the leg has been withdrawn. Unavailable records
	// are excluded from every listing and every facet computation.
	StatusUnavailable FlightStatus = "unavailable"

	// StatusUnknown is the fallback for unrecognized raw status strings.
	StatusUnknown FlightStatus = "unknown"
)

// ParseFlightStatus normalizes a raw status string from a feed record.
// Matching is case-insensitive; "confirmed" is a legacy alias for available.
func ParseFlightStatus(raw string) FlightStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available", "confirmed":
		return StatusAvailable
	case "pending":
		return StatusPending
	case "unavailable":
		return StatusUnavailable
	default:
		return StatusUnknown
	}
}

// Flight is the canonical, immutable representation of one empty-leg offer.
// It is produced once per fetch cycle by the feed normalizer and treated as a
// read-only snapshot by the query engine.
type Flight struct {
	// ID is an opaque stable identifier, unique within one result set.
	ID string `json:"id"`

	// OriginCode is the uppercase 3-letter IATA code of the departure airport.
	// Empty when it could not be parsed from a legacy free-text route.
	OriginCode string `json:"originCode"`

	// DestinationCode is the uppercase 3-letter IATA code of the arrival airport.
	DestinationCode string `json:"destinationCode"`

	// OriginName is the human-readable departure airport name, optional.
	OriginName string `json:"originName,omitempty"`

	// DestinationName is the human-readable arrival airport name, optional.
	DestinationName string `json:"destinationName,omitempty"`

	// OriginTz is the IANA timezone of the departure airport, optional.
	// Absence means temporal fields render in the viewer's local zone.
	OriginTz string `json:"originTz,omitempty"`

	// DestinationTz is the IANA timezone of the arrival airport, optional.
	DestinationTz string `json:"destinationTz,omitempty"`

	// DepartureAt is the departure instant; zero when unparseable.
	DepartureAt time.Time `json:"departureAt,omitempty"`

	// DepartureRaw preserves the raw departure timestamp string exactly as the
	// feed delivered it. The date filter compares against its first ten
	// characters (see FilterState.Date).
	DepartureRaw string `json:"-"`

	// ArrivalAt is the arrival instant; zero when unparseable or implausible.
	ArrivalAt time.Time `json:"arrivalAt,omitempty"`

	// Aircraft is a free-text aircraft label, optional.
	Aircraft string `json:"aircraft,omitempty"`

	// PriceCurrent is the current asking price in major currency units.
	// Nil means no price is published for the leg.
	PriceCurrent *float64 `json:"priceCurrent,omitempty"`

	// PriceOriginal is the regular charter price used to show savings.
	PriceOriginal *float64 `json:"priceOriginal,omitempty"`

	// Currency is the ISO 4217 currency code, default "EUR".
	Currency string `json:"currency"`

	// Status is the normalized availability state.
	Status FlightStatus `json:"status"`

	// LastSeenAt is when the feed last confirmed the offer, display only.
	LastSeenAt time.Time `json:"lastSeenAt,omitempty"`

	// Probability is the operator-reported confirmation chance in [0,1],
	// shown only when Status is not available. Nil when unreported.
	Probability *float64 `json:"probability,omitempty"`

	// Link is the upstream booking URL, optional.
	Link string `json:"link,omitempty"`

	// Source identifies which feed integration produced the record.
	Source string `json:"source,omitempty"`
}

// EffectivePrice returns the price used for comparison and sorting: the current
// price when present, else the original price, else +Inf so that unpriced legs
// fail every price ceiling and sort after every priced leg ascending.
func (f Flight) EffectivePrice() float64 {
	if f.PriceCurrent != nil {
		return *f.PriceCurrent
	}
	if f.PriceOriginal != nil {
		return *f.PriceOriginal
	}
	return math.Inf(1)
}

// SavedAmount returns priceOriginal - priceCurrent, clamped at zero. Feeds
// occasionally deliver an original price below the current one; a negative
// saving must never reach the card.
func (f Flight) SavedAmount() float64 {
	if f.PriceCurrent == nil || f.PriceOriginal == nil {
		return 0
	}
	saved := *f.PriceOriginal - *f.PriceCurrent
	if saved < 0 {
		return 0
	}
	return saved
}

// SavedPercent returns the discount against the original price as a whole
// percentage, rounded to the nearest integer. Zero when there is no positive
// saving or no original price to compare against.
func (f Flight) SavedPercent() int {
	saved := f.SavedAmount()
	if saved <= 0 || f.PriceOriginal == nil || *f.PriceOriginal <= 0 {
		return 0
	}
	return int(math.Round(saved / *f.PriceOriginal * 100))
}

// OriginLabel returns the display label for the departure airport,
// falling back to the code when no name is known.
func (f Flight) OriginLabel() string {
	if f.OriginName != "" {
		return f.OriginName
	}
	return f.OriginCode
}

// DestinationLabel returns the display label for the arrival airport.
func (f Flight) DestinationLabel() string {
	if f.DestinationName != "" {
		return f.DestinationName
	}
	return f.DestinationCode
}
