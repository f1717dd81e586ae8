package http

// ListingResponseDTO is the data transfer object for listing responses.
// It matches the expected API output format with snake_case fields.
type ListingResponseDTO struct {
	Filters     FiltersDTO       `json:"filters"`
	Sort        SortDTO          `json:"sort"`
	Pagination  PaginationDTO    `json:"pagination"`
	Facets      FacetsDTO        `json:"facets"`
	Fingerprint string           `json:"fingerprint"`
	Flights     []FlightCardDTO  `json:"flights"`
}

// FiltersDTO echoes the filter state the listing was computed with. Stale
// origin or destination selections the engine cleared are already removed.
type FiltersDTO struct {
	Query       string `json:"q,omitempty"`
	Status      string `json:"status,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Date        string `json:"date,omitempty"`
	MaxPrice    string `json:"max_price,omitempty"`
	Aircraft    string `json:"aircraft,omitempty"`
}

// SortDTO echoes the sort state the listing was computed with.
type SortDTO struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// PaginationDTO describes the returned page.
type PaginationDTO struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// FacetsDTO carries the selectable filter options for the current listing.
type FacetsDTO struct {
	Origins      []OptionDTO `json:"origins"`
	Destinations []OptionDTO `json:"destinations"`
	Aircraft     []OptionDTO `json:"aircraft"`
}

// OptionDTO is one selectable facet value.
type OptionDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// FlightCardDTO is one flight deal as rendered in the listing.
type FlightCardDTO struct {
	ID          string      `json:"id"`
	Origin      EndpointDTO `json:"origin"`
	Destination EndpointDTO `json:"destination"`

	DepartureDate string `json:"departure_date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	DayBucket     string `json:"day_bucket"`

	Aircraft string `json:"aircraft,omitempty"`
	Status   string `json:"status"`

	Price          *PriceDTO `json:"price,omitempty"`
	OriginalPrice  *PriceDTO `json:"original_price,omitempty"`
	Savings        string    `json:"savings,omitempty"`
	SavingsPercent int       `json:"savings_percent,omitempty"`

	Probability *float64 `json:"probability,omitempty"`
	Link        string   `json:"link,omitempty"`
	LastSeen    string   `json:"last_seen,omitempty"`
	Source      string   `json:"source"`
}

// EndpointDTO is one side of the route.
type EndpointDTO struct {
	Code  string `json:"code,omitempty"`
	Label string `json:"label"`
}

// PriceDTO carries an amount alongside its display rendering.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}
