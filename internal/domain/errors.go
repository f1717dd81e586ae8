package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the listing system. Callers match them with errors.Is;
// the HTTP layer maps them to response codes.
var (
	// ErrInvalidRequest indicates the listing request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrFeedUnavailable indicates the upstream flight feed could not be
	// fetched. This is the only recoverable-vs-fatal boundary in the system;
	// an empty listing is never reported through it.
	ErrFeedUnavailable = errors.New("flight feed unavailable")
)

// FeedError wraps a failure from one feed fetch with its source name.
type FeedError struct {
	// Source is the feed integration that failed.
	Source string

	// Err is the underlying error.
	Err error
}

// NewFeedError creates a FeedError for the given source.
func NewFeedError(source string, err error) *FeedError {
	return &FeedError{Source: source, Err: err}
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/errors.As.
func (e *FeedError) Unwrap() error {
	return e.Err
}

// Is makes every FeedError match ErrFeedUnavailable.
func (e *FeedError) Is(target error) bool {
	return target == ErrFeedUnavailable
}
