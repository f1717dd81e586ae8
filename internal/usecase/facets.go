package usecase

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jetcheck/listing-engine/internal/domain"
)

// FacetIndexer computes the valid option lists for the filter controls. The
// departure and destination facets mutually constrain each other: each one is
// computed with every active filter applied EXCEPT its own, so the current
// selection never excludes itself from its own dropdown, while a selected
// destination narrows the origin list to airports that actually pair with it
// (and symmetrically). Unavailable records never contribute to any facet.
type FacetIndexer struct {
	collator *collate.Collator
}

// NewFacetIndexer creates a FacetIndexer that sorts labels with
// case-insensitive collation for the given locale.
func NewFacetIndexer(locale language.Tag) *FacetIndexer {
	return &FacetIndexer{
		collator: collate.New(locale, collate.IgnoreCase),
	}
}

// OriginOptions returns the deduplicated, label-sorted departure airports
// valid under every active filter except the origin filter itself.
func (x *FacetIndexer) OriginOptions(records []domain.Flight, state domain.FilterState, now time.Time) []domain.Option {
	return x.airportOptions(records, state.WithoutOrigin(), now, func(f domain.Flight) (string, string) {
		return f.OriginCode, f.OriginLabel()
	})
}

// DestinationOptions returns the deduplicated, label-sorted arrival airports
// valid under every active filter except the destination filter itself.
func (x *FacetIndexer) DestinationOptions(records []domain.Flight, state domain.FilterState, now time.Time) []domain.Option {
	return x.airportOptions(records, state.WithoutDestination(), now, func(f domain.Flight) (string, string) {
		return f.DestinationCode, f.DestinationLabel()
	})
}

// AircraftOptions returns the aircraft labels present in the set constrained
// by every active filter except the aircraft filter itself.
func (x *FacetIndexer) AircraftOptions(records []domain.Flight, state domain.FilterState, now time.Time) []domain.Option {
	seen := make(map[string]struct{})
	options := make([]domain.Option, 0)

	for _, f := range records {
		if !Matches(f, state.WithoutAircraft(), now) {
			continue
		}
		label := strings.TrimSpace(f.Aircraft)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		options = append(options, domain.Option{Code: label, Label: label})
	}

	x.sortByLabel(options)
	return options
}

// airportOptions collects one airport facet: dedup by code, label from the
// record's name with the code as fallback.
func (x *FacetIndexer) airportOptions(records []domain.Flight, state domain.FilterState, now time.Time, extract func(domain.Flight) (code, label string)) []domain.Option {
	seen := make(map[string]struct{})
	options := make([]domain.Option, 0)

	for _, f := range records {
		if !Matches(f, state, now) {
			continue
		}
		code, label := extract(f)
		if code == "" {
			continue
		}
		code = strings.ToUpper(code)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		options = append(options, domain.Option{Code: code, Label: label})
	}

	x.sortByLabel(options)
	return options
}

// sortByLabel orders options by collated label, code as tie-break so the
// order stays total when two airports share a display name.
func (x *FacetIndexer) sortByLabel(options []domain.Option) {
	sort.SliceStable(options, func(i, j int) bool {
		if c := x.collator.CompareString(options[i].Label, options[j].Label); c != 0 {
			return c < 0
		}
		return options[i].Code < options[j].Code
	})
}

// ContainsCode reports whether an option list carries the given code,
// case-insensitively. The orchestrator uses it to drop stale selections.
func ContainsCode(options []domain.Option, code string) bool {
	for _, o := range options {
		if strings.EqualFold(o.Code, code) {
			return true
		}
	}
	return false
}
