package feed

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jetcheck/listing-engine/internal/domain"
	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
)

// DefaultSource is the source label applied to records that do not name one.
const DefaultSource = "jetcheck"

// maxLegDuration bounds the plausible flight time of a single empty leg.
// Arrivals further out than this indicate a parsing artifact (typically a
// time range that crossed midnight without a date) and are discarded.
const maxLegDuration = 24 * time.Hour

var (
	// routeSeparators in matching order; the first one present wins.
	// The hyphen comes last so that dash-variant routes are not split
	// inside a code such as "LIN-2".
	routeSeparators = []string{"→", "->", "—", "–", "-"}

	iataPattern       = regexp.MustCompile(`^[A-Za-z]{3}$`)
	parenCodePattern  = regexp.MustCompile(`^(.*?)\s*\(([A-Za-z]{3})\)$`)
	timeRangePattern  = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
	dashVariantsRegex = regexp.MustCompile(`[‒–—―]`)
)

// Normalizer converts raw feed records into domain flights. Normalization is
// total: malformed fields degrade to their zero state rather than failing the
// record, so one bad field never hides an otherwise usable deal.
type Normalizer struct {
	source string
	clock  timeutil.Clock
}

// NewNormalizer creates a Normalizer. An empty source falls back to
// DefaultSource; a nil clock falls back to the real clock.
func NewNormalizer(source string, clock timeutil.Clock) *Normalizer {
	if source == "" {
		source = DefaultSource
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Normalizer{source: source, clock: clock}
}

// NormalizeAll converts a batch of raw records, dropping only records that
// identify no route at all.
func (n *Normalizer) NormalizeAll(records []Record) []domain.Flight {
	result := make([]domain.Flight, 0, len(records))
	for _, rec := range records {
		f := n.Normalize(rec)
		if f.OriginCode == "" && f.OriginName == "" && f.DestinationCode == "" && f.DestinationName == "" {
			continue
		}
		result = append(result, f)
	}
	return result
}

// Normalize converts a single raw record into a domain Flight.
func (n *Normalizer) Normalize(rec Record) domain.Flight {
	f := domain.Flight{
		OriginCode:      normalizeCode(rec.OriginIATA),
		OriginName:      strings.TrimSpace(rec.OriginName),
		OriginTz:        strings.TrimSpace(rec.OriginTz),
		DestinationCode: normalizeCode(rec.DestinationIATA),
		DestinationName: strings.TrimSpace(rec.DestinationName),
		DestinationTz:   strings.TrimSpace(rec.DestinationTz),
		Aircraft:        strings.TrimSpace(rec.Aircraft),
		Link:            strings.TrimSpace(rec.Link),
		PriceCurrent:    rec.PriceCurrent.Ptr(),
		PriceOriginal:   rec.PriceNormal.Ptr(),
	}

	// Legacy combined fields fill whatever the structured fields left empty.
	if (f.OriginCode == "" && f.OriginName == "") || (f.DestinationCode == "" && f.DestinationName == "") {
		n.applyLegacyRoute(&f, rec.Route)
	}

	f.DepartureRaw = strings.TrimSpace(rec.DepartureTs)
	f.DepartureAt = instantOrZero(rec.DepartureTs)
	f.ArrivalAt = instantOrZero(rec.ArrivalTs)
	if f.DepartureAt.IsZero() {
		n.applyLegacyTimes(&f, rec.Date, rec.Time)
	}

	// An arrival must land after departure within a plausible leg duration;
	// anything else is a parsing artifact and is dropped.
	if !f.ArrivalAt.IsZero() {
		if f.DepartureAt.IsZero() {
			f.ArrivalAt = time.Time{}
		} else if d := f.ArrivalAt.Sub(f.DepartureAt); d <= 0 || d > maxLegDuration {
			f.ArrivalAt = time.Time{}
		}
	}

	if f.PriceCurrent == nil {
		if v, ok := parseMoney(rec.Price); ok {
			f.PriceCurrent = &v
		}
	}

	f.Currency = strings.ToUpper(strings.TrimSpace(rec.Currency))
	if f.Currency == "" {
		f.Currency = "EUR"
	}

	f.Status = deriveStatus(rec.Status, f.PriceCurrent)
	f.Probability = clampProbability(rec.Probability)

	f.LastSeenAt = instantOrZero(rec.LastSeenTs)
	if f.LastSeenAt.IsZero() {
		f.LastSeenAt = n.clock.Now().UTC()
	}

	f.Source = strings.TrimSpace(rec.Source)
	if f.Source == "" {
		f.Source = n.source
	}

	f.ID = strings.TrimSpace(rec.ID)
	if f.ID == "" {
		if f.OriginCode != "" && f.DestinationCode != "" {
			f.ID = CanonicalID(f.OriginCode, f.DestinationCode, f.DepartureAt, f.DepartureRaw, f.Aircraft)
		} else {
			f.ID = uuid.New().String()
		}
	}

	return f
}

// applyLegacyRoute parses a combined route string such as "GVA → IBZ" or
// "Geneva (GVA) - Ibiza (IBZ)" into the flight's endpoints.
func (n *Normalizer) applyLegacyRoute(f *domain.Flight, route string) {
	route = strings.TrimSpace(route)
	if route == "" {
		return
	}

	for _, sep := range routeSeparators {
		before, after, found := strings.Cut(route, sep)
		if !found {
			continue
		}
		code, name := parseEndpoint(before)
		if f.OriginCode == "" && f.OriginName == "" {
			f.OriginCode, f.OriginName = code, name
		}
		code, name = parseEndpoint(after)
		if f.DestinationCode == "" && f.DestinationName == "" {
			f.DestinationCode, f.DestinationName = code, name
		}
		return
	}
}

// applyLegacyTimes parses a combined time range such as "14:30 – 16:05",
// anchored to the record's date field when present. Without a date the range
// cannot be placed on a timeline and is ignored.
func (n *Normalizer) applyLegacyTimes(f *domain.Flight, date, timeRange string) {
	date = strings.TrimSpace(date)
	if date == "" {
		return
	}

	m := timeRangePattern.FindStringSubmatch(dashVariantsRegex.ReplaceAllString(timeRange, "-"))
	if m == nil {
		return
	}

	f.DepartureRaw = date + " " + padClock(m[1])
	f.DepartureAt = instantOrZero(f.DepartureRaw)
	if f.DepartureAt.IsZero() {
		f.DepartureRaw = ""
		return
	}

	arrival := instantOrZero(date + " " + padClock(m[2]))
	if !arrival.IsZero() {
		if arrival.Before(f.DepartureAt) {
			// the leg crosses midnight
			arrival = arrival.Add(24 * time.Hour)
		}
		f.ArrivalAt = arrival
	}
}

// parseEndpoint interprets one side of a route string: a bare IATA code, a
// "City (XXX)" pair, or a plain city name.
func parseEndpoint(s string) (code, name string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if iataPattern.MatchString(s) {
		return strings.ToUpper(s), ""
	}
	if m := parenCodePattern.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[2]), strings.TrimSpace(m[1])
	}
	return "", s
}

// deriveStatus resolves the record's availability. An explicit recognized
// status wins; otherwise a record with a positive asking price is treated as
// available and one without as pending confirmation.
func deriveStatus(raw string, priceCurrent *float64) domain.FlightStatus {
	if s := domain.ParseFlightStatus(raw); s != domain.StatusUnknown {
		return s
	}
	if priceCurrent != nil && *priceCurrent > 0 {
		return domain.StatusAvailable
	}
	return domain.StatusPending
}

func clampProbability(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return &v
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// instantOrZero parses a feed timestamp, degrading to the zero time when the
// string is empty or unrecognized. A bad timestamp never fails the record.
func instantOrZero(s string) time.Time {
	t, err := timeutil.ParseInstant(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// padClock left-pads a H:MM clock string to HH:MM so it matches the instant
// layouts.
func padClock(s string) string {
	if len(s) == 4 {
		return "0" + s
	}
	return s
}
