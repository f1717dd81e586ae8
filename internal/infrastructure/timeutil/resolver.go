package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Bucket classifies a departure relative to "now" by civil date, not by
// elapsed duration. A flight at 23:50 local time is Today when "now" is 00:05
// the same civil day; two instants 30 minutes apart straddling local midnight
// land in different buckets.
type Bucket string

// The three day buckets. There is no "past" bucket: upstream filtering is
// responsible for excluding departed flights, and anything unparseable or
// after tomorrow buckets as Upcoming.
const (
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
	BucketUpcoming Bucket = "Upcoming"
)

// CivilDate is a calendar date as perceived in a specific timezone, distinct
// from the absolute instant.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// instantLayouts are the accepted feed timestamp forms, tried in order. The
// space-separated forms carry no offset and are treated as UTC; the scrapers
// persist naive local times that way.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant normalizes a feed timestamp string to a single instant.
// It accepts RFC3339/"Z"-suffixed forms and the space-separated
// "YYYY-MM-DD HH:MM:SS" form (treated as UTC when no offset is present).
// An empty or unrecognized string returns a zero time and an error; callers
// degrade to the Upcoming bucket and empty display strings, never to a panic
// that aborts rendering of the remaining list.
func ParseInstant(s string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

// Resolver converts instants into civil dates and day buckets. The viewer
// location is the fallback for records without their own timezone; it is
// injected so the engine never reads the process-global zone implicitly.
type Resolver struct {
	viewer *time.Location
}

// NewResolver creates a Resolver with the given viewer location.
// A nil location falls back to UTC.
func NewResolver(viewer *time.Location) *Resolver {
	if viewer == nil {
		viewer = time.UTC
	}
	return &Resolver{viewer: viewer}
}

// Viewer returns the resolver's fallback location.
func (r *Resolver) Viewer() *time.Location {
	return r.viewer
}

// location picks the record timezone when present, else the viewer location.
func (r *Resolver) location(tz string) *time.Location {
	return LocationOrDefault(tz, r.viewer)
}

// ResolveCivilDate returns the calendar date of the instant in the given civil
// timezone, or in the viewer location when tz is empty or unknown.
func (r *Resolver) ResolveCivilDate(instant time.Time, tz string) CivilDate {
	y, m, d := instant.In(r.location(tz)).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// DayBucket compares the civil date of the instant against the civil date of
// now, both resolved in the same timezone. A zero instant buckets as Upcoming.
func (r *Resolver) DayBucket(instant time.Time, tz string, now time.Time) Bucket {
	if instant.IsZero() {
		return BucketUpcoming
	}

	loc := r.location(tz)
	fy, fm, fd := instant.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()

	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	flight := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)

	switch flight {
	case today:
		return BucketToday
	case today.AddDate(0, 0, 1):
		return BucketTomorrow
	default:
		return BucketUpcoming
	}
}
