package driven

import (
	"context"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// BlockFetcher delivers lesson pages from a content source. Implementations
// own all transport concerns: rate limiting, retries, request
// deduplication, and child resolution. The parser never requests more data;
// a returned Page is complete.
type BlockFetcher interface {
	// Type returns the fetcher type identifier (e.g. "notion", "snapshot").
	Type() string

	// Capabilities returns what this fetcher supports.
	Capabilities() FetcherCapabilities

	// FetchPage returns the page with every block's children resolved.
	FetchPage(ctx context.Context, pageID string) (*domain.Page, error)

	// Watch listens for changes to a page, re-emitting the hydrated page
	// on each change. Only available if SupportsWatch is true.
	Watch(ctx context.Context, pageID string) (<-chan domain.Page, error)

	// Close releases resources.
	Close() error
}

// FetcherCapabilities describes what a fetcher supports.
type FetcherCapabilities struct {
	// SupportsWatch indicates the fetcher can push change events.
	SupportsWatch bool

	// RequiresAuth indicates the fetcher needs an API token.
	RequiresAuth bool
}
