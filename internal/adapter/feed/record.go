package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is a single raw flight object as delivered by the upstream feed.
//
// The feed serves two generations of payload. Current records carry the
// structured fields (origin_iata, departure_ts, price_current, ...). Older
// records collapse the same information into combined strings: a "route"
// such as "GVA → IBZ", a "time" range such as "14:30 – 16:05" and a "price"
// such as "€12,000". The normalizer accepts both shapes; structured fields
// win when both are present.
type Record struct {
	ID     string `json:"id"`
	Source string `json:"source"`

	OriginIATA      string `json:"origin_iata"`
	OriginName      string `json:"origin_name"`
	OriginTz        string `json:"origin_tz"`
	DestinationIATA string `json:"destination_iata"`
	DestinationName string `json:"destination_name"`
	DestinationTz   string `json:"destination_tz"`

	DepartureTs string `json:"departure_ts"`
	ArrivalTs   string `json:"arrival_ts"`
	LastSeenTs  string `json:"last_seen_ts"`

	PriceCurrent Price  `json:"price_current"`
	PriceNormal  Price  `json:"price_normal"`
	Currency     string `json:"currency"`

	Aircraft    string   `json:"aircraft"`
	Status      string   `json:"status"`
	Probability *float64 `json:"probability"`
	Link        string   `json:"link"`

	// Legacy combined fields.
	Route string `json:"route"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Price string `json:"price"`
}

// Price is a monetary amount that the feed serializes either as a JSON
// number or as a display string ("12,000", "€ 9 500"). Absent, unparseable
// and non-positive amounts all decode to the unset state.
type Price struct {
	Amount float64
	Valid  bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	p.Amount = 0
	p.Valid = false

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("price string: %w", err)
		}
		if v, ok := parseMoney(s); ok {
			p.Amount = v
			p.Valid = true
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("price number: %w", err)
	}
	if v > 0 {
		p.Amount = v
		p.Valid = true
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Amount)
}

// Ptr returns the amount as an optional pointer, nil when unset.
func (p Price) Ptr() *float64 {
	if !p.Valid {
		return nil
	}
	v := p.Amount
	return &v
}

// parseMoney extracts a positive amount from a display string. Thousands
// separators (comma, space) are stripped; currency symbols and surrounding
// text are ignored. Returns false when no positive amount can be read.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var digits strings.Builder
	started := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
			started = true
		case r == '.' && started:
			digits.WriteRune(r)
		case r == ',' || r == ' ' || r == ' ':
			// thousands separators
		default:
			if started {
				// stop at the first non-numeric rune after the amount
				goto done
			}
		}
	}
done:
	v, err := strconv.ParseFloat(strings.TrimSuffix(digits.String(), "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
