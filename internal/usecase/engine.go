package usecase

import (
	"golang.org/x/text/language"

	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
)

// ListingEngine composes the filter predicate, sorter and paginator over the
// record snapshot, and independently composes the facet indexer over the
// filter-state-dependent subset.
//
// Recomputation is pull-based and fully deterministic: Run with identical
// inputs (and a fixed clock) yields structurally identical output, mutates no
// shared state, and allocates fresh slices each call, so it is safe to call
// concurrently from multiple goroutines.
//
// Page-reset contract: whenever the filter state or sort state changes
// relative to the previous call, the CALLER resets the requested page to 1
// before the next Run. This applies uniformly to every filter field, maxPrice
// and aircraft included. The engine does not own the reset timing; the HTTP
// layer implements it via a query fingerprint (see adapter/http).
type ListingEngine struct {
	clock  timeutil.Clock
	facets *FacetIndexer
}

// Config contains configuration options for the listing engine.
type Config struct {
	// Clock supplies "now" for departed-flight exclusion and day buckets.
	// Defaults to the real clock.
	Clock timeutil.Clock

	// Locale drives facet label collation. Defaults to English.
	Locale language.Tag
}

// NewListingEngine creates a ListingEngine with the given configuration.
// A nil config selects the defaults.
func NewListingEngine(config *Config) *ListingEngine {
	clock := timeutil.Clock(timeutil.NewRealClock())
	locale := language.English
	if config != nil {
		if config.Clock != nil {
			clock = config.Clock
		}
		if config.Locale != (language.Tag{}) {
			locale = config.Locale
		}
	}

	return &ListingEngine{
		clock:  clock,
		facets: NewFacetIndexer(locale),
	}
}

// Run executes one listing query: filter, sort, paginate, plus the facet
// option sets for the remaining controls.
//
// Before filtering, stale facet selections are cleared: when the selected
// origin is no longer present in the freshly computed (destination-constrained)
// origin option set, or vice versa, that selection is dropped rather than left
// pointing at a non-existent option. The returned result echoes the filter
// state actually used.
func (e *ListingEngine) Run(records []domain.Flight, filter domain.FilterState, sortState domain.SortState, page, pageSize int) domain.QueryResult {
	now := e.clock.Now()

	originOptions := e.facets.OriginOptions(records, filter, now)
	destinationOptions := e.facets.DestinationOptions(records, filter, now)

	cleared := filter
	if cleared.OriginCode != "" && !ContainsCode(originOptions, cleared.OriginCode) {
		cleared.OriginCode = ""
	}
	if cleared.DestinationCode != "" && !ContainsCode(destinationOptions, cleared.DestinationCode) {
		cleared.DestinationCode = ""
	}

	// A cleared selection widens the constraint on the paired facet, so the
	// option sets have to be recomputed against the state actually served.
	if cleared != filter {
		originOptions = e.facets.OriginOptions(records, cleared, now)
		destinationOptions = e.facets.DestinationOptions(records, cleared, now)
	}

	filtered := ApplyFilters(records, cleared, now)
	sorted := SortFlights(filtered, sortState)
	paged := Paginate(sorted, pageSize, page)

	return domain.QueryResult{
		PageItems:          paged.Items,
		Total:              len(sorted),
		TotalPages:         paged.Total,
		CurrentPage:        paged.Current,
		OriginOptions:      originOptions,
		DestinationOptions: destinationOptions,
		AircraftOptions:    e.facets.AircraftOptions(records, cleared, now),
		Filter:             cleared,
	}
}

// Clock exposes the engine's clock, used by the DTO layer so display labels
// (day buckets, relative ages) share the listing's notion of "now".
func (e *ListingEngine) Clock() timeutil.Clock {
	return e.clock
}
