package usecase

import (
	"sort"
	"time"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// SortFlights returns a new ordered slice; the input is untouched. The sort is
// stable: flights with equal keys keep their relative input order in both
// directions.
//
// Key extraction:
//   - departure: the departure instant when present, else an empty-string
//     sentinel that sorts before every real timestamp ascending and after every
//     real timestamp descending. Missing departures are NOT pushed to the very
//     end regardless of direction; this matches the historical listing.
//   - price: effective price (current, else original, else +Inf).
//   - seen: the last-seen instant, same sentinel rule as departure.
//
// Descending is the exact inversion of the ascending comparison, sentinels
// included.
func SortFlights(flights []domain.Flight, state domain.SortState) []domain.Flight {
	result := make([]domain.Flight, len(flights))
	copy(result, flights)

	if len(result) < 2 {
		return result
	}

	key := state.Key
	if !key.IsValid() {
		key = domain.SortByDeparture
	}

	sort.SliceStable(result, func(i, j int) bool {
		c := compareByKey(result[i], result[j], key)
		if state.Direction == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})

	return result
}

// compareByKey returns a three-way comparison for the given sort key.
func compareByKey(a, b domain.Flight, key domain.SortKey) int {
	switch key {
	case domain.SortByPrice:
		return comparePrices(a.EffectivePrice(), b.EffectivePrice())
	case domain.SortBySeen:
		return compareInstants(a.LastSeenAt, b.LastSeenAt)
	default:
		return compareInstants(a.DepartureAt, b.DepartureAt)
	}
}

// compareInstants orders two instants where a zero time is the
// lexicographically-smallest sentinel: before every real timestamp.
func compareInstants(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return -1
	case b.IsZero():
		return 1
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

// comparePrices orders two effective prices. +Inf compares equal to +Inf so
// that two unpriced flights stay in input order.
func comparePrices(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
