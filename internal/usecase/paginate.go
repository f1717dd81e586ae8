package usecase

import "github.com/jetcheck/listing-engine/internal/domain"

// DefaultPageSize is the number of cards per listing page.
const DefaultPageSize = 12

// Page is the bounded slice of a sorted listing plus the pager facts.
type Page struct {
	// Items is the visible slice for the served page.
	Items []domain.Flight

	// Current is the clamped page number actually served, in [1, Total].
	Current int

	// Total is max(1, ceil(len/pageSize)): an empty listing still has one page.
	Total int
}

// Paginate slices the sorted flights into the requested page. An out-of-range
// request clamps to the nearest valid page instead of producing an empty
// slice: page 0 serves page 1, page 999 serves the last page. The slice uses
// the clamped page, never the raw requested one. A non-positive pageSize falls
// back to DefaultPageSize.
func Paginate(flights []domain.Flight, pageSize, requestedPage int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(flights) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	current := requestedPage
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * pageSize
	end := start + pageSize
	if start > len(flights) {
		start = len(flights)
	}
	if end > len(flights) {
		end = len(flights)
	}

	return Page{
		Items:   flights[start:end],
		Current: current,
		Total:   totalPages,
	}
}
