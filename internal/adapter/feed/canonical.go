package feed

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// canonicalWindow is the bucket applied to departure instants before hashing,
// so that a deal whose published departure drifts by a minute or two between
// refreshes still resolves to the same identity.
const canonicalWindow = 5 * time.Minute

// CanonicalID derives a stable identifier for a flight from its route,
// departure and aircraft. Feeds that omit record IDs reuse the same deal
// across refreshes; hashing the identifying fields lets consecutive
// snapshots agree on which records are the same flight.
func CanonicalID(origin, destination string, departure time.Time, departureRaw, aircraft string) string {
	dep := strings.TrimSpace(departureRaw)
	if !departure.IsZero() {
		dep = departure.UTC().Truncate(canonicalWindow).Format(time.RFC3339)
	}

	key := fmt.Sprintf("%s|%s|%s|%s",
		strings.ToUpper(strings.TrimSpace(origin)),
		strings.ToUpper(strings.TrimSpace(destination)),
		dep,
		strings.ToLower(strings.TrimSpace(aircraft)),
	)

	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
