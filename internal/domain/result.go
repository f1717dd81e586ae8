package domain

// Option is one selectable entry in a facet dropdown.
type Option struct {
	// Code is the stable value submitted back as a filter (IATA code for the
	// airport facets, the verbatim label for the aircraft facet).
	Code string `json:"code"`

	// Label is the human-readable text shown in the control.
	Label string `json:"label"`
}

// QueryResult is the complete output of one query engine run: the visible page,
// the pager totals, and the facet option sets for the remaining controls.
type QueryResult struct {
	// PageItems is the visible slice of the filtered, sorted listing.
	PageItems []Flight `json:"pageItems"`

	// Total is the number of flights matching the filter state, across all pages.
	Total int `json:"total"`

	// TotalPages is max(1, ceil(Total/pageSize)).
	TotalPages int `json:"totalPages"`

	// CurrentPage is the clamped page number actually served, in [1, TotalPages].
	CurrentPage int `json:"currentPage"`

	// OriginOptions lists valid departure airports given every other active filter.
	OriginOptions []Option `json:"originOptions"`

	// DestinationOptions lists valid arrival airports given every other active filter.
	DestinationOptions []Option `json:"destinationOptions"`

	// AircraftOptions lists the aircraft labels present in the constrained set.
	AircraftOptions []Option `json:"aircraftOptions"`

	// Filter echoes the filter state the result was computed with. It differs
	// from the input only when a stale origin/destination selection was cleared
	// because the freshly computed option set no longer contained it.
	Filter FilterState `json:"filter"`
}

// IsEmpty reports whether the filter state matched nothing. An empty result is
// a valid terminal state surfaced as a "no results" listing, distinct from a
// feed failure.
func (r QueryResult) IsEmpty() bool {
	return r.Total == 0
}
