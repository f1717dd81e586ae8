package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores cached timezone locations. Airport timezones repeat
// heavily across a listing, so each IANA name is loaded at most once.
var locationCache sync.Map

// Common timezone names for convenience.
const (
	// UTC is the Coordinated Universal Time.
	UTC = "UTC"

	// CET covers most of the network's departure airports.
	CET = "Europe/Zurich"

	// Vienna is the operator's home base timezone.
	Vienna = "Europe/Vienna"

	// Lisbon is Western European Time.
	Lisbon = "Europe/Lisbon"
)

// GetLocation returns a cached timezone location.
// It caches the result for subsequent calls with the same name.
func GetLocation(name string) (*time.Location, error) {
	// Check cache first
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	// Load location
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	// Store in cache
	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
// Use this for known-good timezone names (e.g., constants).
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// LocationOrDefault resolves an IANA timezone name, falling back to the given
// default when the name is empty or unknown. A record-specific timezone always
// wins over the fallback; the system default timezone is never consulted here.
func LocationOrDefault(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := GetLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// InTimezone converts a time to the specified timezone.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := GetLocation(timezone)
	if err != nil {
		return t, err
	}
	return t.In(loc), nil
}

// ClearLocationCache clears the cached timezone locations.
// This is primarily useful for testing.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
