// Package usecase provides the query engine for the empty-leg listing: a pure,
// deterministic pipeline that turns a record snapshot plus the user's filter,
// sort and page state into the visible page and the valid facet option sets.
package usecase

import (
	"strings"
	"time"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// Matches reports whether a flight passes every active filter. All rules are
// AND-combined; an unset dimension never excludes.
//
// Two rules apply regardless of the filter state:
//   - unavailable records are always excluded (hard rule, not user-toggleable)
//   - a flight whose departure resolves to a valid instant strictly before now
//     is excluded; a missing or unparseable departure does NOT exclude
func Matches(f domain.Flight, state domain.FilterState, now time.Time) bool {
	if f.Status == domain.StatusUnavailable {
		return false
	}

	if !f.DepartureAt.IsZero() && f.DepartureAt.Before(now) {
		return false
	}

	if state.Status != "" && !strings.EqualFold(state.Status, string(f.Status)) {
		return false
	}

	if state.OriginCode != "" && !strings.EqualFold(state.OriginCode, f.OriginCode) {
		return false
	}

	if state.DestinationCode != "" && !strings.EqualFold(state.DestinationCode, f.DestinationCode) {
		return false
	}

	// The date filter compares the selected day against the UTC-sliced first
	// ten characters of the raw departure string, NOT against the civil date
	// in the flight's own timezone. A flight just after local midnight in a
	// negative-offset zone will mismatch the selected date. Known imprecision,
	// preserved as the literal contract.
	if state.Date != "" && rawDepartureDay(f) != state.Date {
		return false
	}

	if ceiling, ok := state.MaxPriceValue(); ok && f.EffectivePrice() > ceiling {
		return false
	}

	if state.Aircraft != "" {
		aircraft := strings.TrimSpace(f.Aircraft)
		if aircraft == "" || aircraft != strings.TrimSpace(state.Aircraft) {
			return false
		}
	}

	if state.FreeText != "" && !matchesFreeText(f, state.FreeText) {
		return false
	}

	return true
}

// rawDepartureDay slices the YYYY-MM-DD prefix off the raw departure string.
func rawDepartureDay(f domain.Flight) string {
	if len(f.DepartureRaw) < 10 {
		return ""
	}
	return f.DepartureRaw[:10]
}

// matchesFreeText checks a case-insensitive substring match against the
// airport names and codes. Any one hit passes.
func matchesFreeText(f domain.Flight, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	for _, field := range []string{f.OriginName, f.DestinationName, f.OriginCode, f.DestinationCode} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ApplyFilters returns a new slice with only the flights that match the state.
// The input slice is never mutated.
func ApplyFilters(flights []domain.Flight, state domain.FilterState, now time.Time) []domain.Flight {
	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if Matches(f, state, now) {
			result = append(result, f)
		}
	}
	return result
}
