package domain

import "context"

// FlightSource produces the current snapshot of flight records consumed by the
// query engine. Fetching is the only asynchronous boundary in the system: the
// engine itself never blocks or retries, so cancellation and timeout semantics
// live entirely behind this interface.
type FlightSource interface {
	// FetchFlights returns the normalized record snapshot.
	FetchFlights(ctx context.Context) ([]Flight, error)

	// Name returns the source's unique identifier for logging and errors.
	Name() string
}
