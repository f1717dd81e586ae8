// Package http provides the HTTP handler layer for the listing API.
package http

import (
	"time"

	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/display"
)

// ToListingResponseDTO converts an engine result to the API response shape.
// The now instant drives day buckets and last-seen ages so the whole response
// is rendered against one clock reading.
func ToListingResponseDTO(result *domain.QueryResult, sort domain.SortState, pageSize int, fmtr *display.Formatter, now time.Time) *ListingResponseDTO {
	if result == nil {
		return nil
	}

	dto := &ListingResponseDTO{
		Filters: FiltersDTO{
			Query:       result.Filter.FreeText,
			Status:      result.Filter.Status,
			Origin:      result.Filter.OriginCode,
			Destination: result.Filter.DestinationCode,
			Date:        result.Filter.Date,
			MaxPrice:    result.Filter.MaxPrice,
			Aircraft:    result.Filter.Aircraft,
		},
		Sort: SortDTO{
			Key:       string(sort.Key),
			Direction: string(sort.Direction),
		},
		Pagination: PaginationDTO{
			Page:         result.CurrentPage,
			PageSize:     pageSize,
			TotalPages:   result.TotalPages,
			TotalResults: result.Total,
		},
		Facets: FacetsDTO{
			Origins:      toOptionDTOs(result.OriginOptions),
			Destinations: toOptionDTOs(result.DestinationOptions),
			Aircraft:     toOptionDTOs(result.AircraftOptions),
		},
		Fingerprint: StateFingerprint(result.Filter, sort),
		Flights:     make([]FlightCardDTO, len(result.PageItems)),
	}

	for i, f := range result.PageItems {
		dto.Flights[i] = ToFlightCardDTO(f, fmtr, now)
	}

	return dto
}

// ToFlightCardDTO converts a domain flight to its listing card.
func ToFlightCardDTO(f domain.Flight, fmtr *display.Formatter, now time.Time) FlightCardDTO {
	card := FlightCardDTO{
		ID: f.ID,
		Origin: EndpointDTO{
			Code:  f.OriginCode,
			Label: f.OriginLabel(),
		},
		Destination: EndpointDTO{
			Code:  f.DestinationCode,
			Label: f.DestinationLabel(),
		},
		DayBucket: fmtr.DayBucket(f.DepartureAt, f.OriginTz, now),
		Aircraft:  f.Aircraft,
		Status:    string(f.Status),
		Link:      f.Link,
		LastSeen:  fmtr.RelativeAge(f.LastSeenAt, now),
		Source:    f.Source,
	}

	// Probability is a hedge on an unconfirmed leg; a card that is already
	// bookable at the listed price does not carry one.
	if f.Status != domain.StatusAvailable {
		card.Probability = f.Probability
	}

	if !f.DepartureAt.IsZero() {
		card.DepartureDate = fmtr.Date(f.DepartureAt, f.OriginTz)
		card.DepartureTime = fmtr.TimeOfDay(f.DepartureAt, f.OriginTz)
	}
	if !f.ArrivalAt.IsZero() {
		// the arrival clock reads in the destination's local time
		card.ArrivalTime = fmtr.TimeOfDay(f.ArrivalAt, f.DestinationTz)
	}

	if f.PriceCurrent != nil {
		card.Price = toPriceDTO(*f.PriceCurrent, f.Currency, fmtr)
	}
	if f.PriceOriginal != nil {
		card.OriginalPrice = toPriceDTO(*f.PriceOriginal, f.Currency, fmtr)
	}
	if saved := f.SavedAmount(); saved > 0 {
		card.Savings = fmtr.Money(saved, f.Currency)
		card.SavingsPercent = f.SavedPercent()
	}

	return card
}

func toPriceDTO(amount float64, currency string, fmtr *display.Formatter) *PriceDTO {
	return &PriceDTO{
		Amount:   amount,
		Currency: currency,
		Display:  fmtr.Money(amount, currency),
	}
}

func toOptionDTOs(options []domain.Option) []OptionDTO {
	result := make([]OptionDTO, len(options))
	for i, opt := range options {
		result[i] = OptionDTO{Code: opt.Code, Label: opt.Label}
	}
	return result
}
