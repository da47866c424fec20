package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. The parsing core itself
// never errors; these surface from fetchers and configuration.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPageNotFound indicates the requested page does not exist or the
	// integration has not been granted access to it.
	ErrPageNotFound = errors.New("page not found")

	// ErrAuthInvalid indicates the CMS rejected the integration token.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded even after
	// the fetcher's own throttling and retries.
	ErrRateLimited = errors.New("rate limited")

	// ErrFetcherClosed indicates the fetcher has been closed.
	ErrFetcherClosed = errors.New("fetcher closed")
)
