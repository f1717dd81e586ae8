package domain

import "strings"

// SortKey defines the available sort dimensions for the listing.
type SortKey string

// Available sort keys.
const (
	// SortByDeparture orders by departure instant. Flights with an unparseable
	// departure carry an empty-string key, so ascending puts them first and
	// descending puts them last — a preserved quirk, not a push-to-end rule.
	SortByDeparture SortKey = "departure"

	// SortByPrice orders by effective price (current, else original, else +Inf).
	SortByPrice SortKey = "price"

	// SortBySeen orders by when the feed last confirmed the offer.
	SortBySeen SortKey = "seen"
)

// IsValid checks if the sort key is a known value.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByDeparture, SortByPrice, SortBySeen:
		return true
	default:
		return false
	}
}

// ParseSortKey converts a string to a SortKey.
// Returns SortByDeparture if the string is empty or invalid.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key.IsValid() {
		return key
	}
	return SortByDeparture
}

// SortDirection defines the ordering direction.
type SortDirection string

// Available sort directions.
const (
	// SortAsc is ascending order.
	SortAsc SortDirection = "asc"

	// SortDesc is descending order: the exact inversion of the ascending
	// comparison, missing-value sentinels included.
	SortDesc SortDirection = "desc"
)

// IsValid checks if the direction is a known value.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// ParseSortDirection converts a string to a SortDirection.
// Returns SortAsc if the string is empty or invalid.
func ParseSortDirection(s string) SortDirection {
	dir := SortDirection(strings.ToLower(strings.TrimSpace(s)))
	if dir.IsValid() {
		return dir
	}
	return SortAsc
}

// SortState pairs a sort key with a direction.
type SortState struct {
	// Key is the sort dimension.
	Key SortKey `json:"key"`

	// Direction is asc or desc.
	Direction SortDirection `json:"direction"`
}

// DefaultSortState returns the listing default: earliest departure first.
func DefaultSortState() SortState {
	return SortState{Key: SortByDeparture, Direction: SortAsc}
}
