package notion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jomei/notionapi"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driven"
	"github.com/custodia-labs/lessonpage/internal/logger"
)

const (
	// Type is the fetcher type identifier.
	Type = "notion"

	// PageSize is the children page size requested from the API.
	PageSize = 100

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries; it doubles per
	// attempt.
	RetryDelay = time.Second
)

// Ensure Fetcher implements the interface.
var _ driven.BlockFetcher = (*Fetcher)(nil)

// blockAPI is the slice of the API client the fetcher needs for block
// hydration. *notionapi.BlockClient satisfies it.
type blockAPI interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
}

// pageAPI is the slice of the API client used for page metadata.
// *notionapi.PageClient satisfies it.
type pageAPI interface {
	Get(ctx context.Context, id notionapi.PageID) (*notionapi.Page, error)
}

// Fetcher delivers fully hydrated pages from the Notion API. It rate-limits
// with a token bucket, retries transient failures with backoff, and
// deduplicates concurrent child fetches for the same block, caching
// resolved subtrees for its lifetime.
type Fetcher struct {
	blocks  blockAPI
	pages   pageAPI
	limiter *RateLimiter

	group singleflight.Group

	mu     sync.Mutex
	cache  map[string][]domain.Block
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRequestsPerSecond overrides the default request rate.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = NewRateLimiter(rps)
	}
}

// NewFetcher creates a Notion fetcher authenticated with an integration
// token.
func NewFetcher(token string, opts ...Option) *Fetcher {
	client := notionapi.NewClient(notionapi.Token(token))
	f := &Fetcher{
		blocks:  client.Block,
		pages:   client.Page,
		limiter: NewRateLimiter(DefaultRequestsPerSecond),
		cache:   make(map[string][]domain.Block),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// newFetcherWithAPI wires explicit API implementations. Used by tests.
func newFetcherWithAPI(blocks blockAPI, pages pageAPI, opts ...Option) *Fetcher {
	f := &Fetcher{
		blocks:  blocks,
		pages:   pages,
		limiter: NewRateLimiter(DefaultRequestsPerSecond),
		cache:   make(map[string][]domain.Block),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Type returns the fetcher type identifier.
func (f *Fetcher) Type() string {
	return Type
}

// Capabilities returns what this fetcher supports.
func (f *Fetcher) Capabilities() driven.FetcherCapabilities {
	return driven.FetcherCapabilities{
		SupportsWatch: false,
		RequiresAuth:  true,
	}
}

// FetchPage returns the page with every block's children resolved.
func (f *Fetcher) FetchPage(ctx context.Context, pageID string) (*domain.Page, error) {
	if f.isClosed() {
		return nil, domain.ErrFetcherClosed
	}

	title, err := f.fetchTitle(ctx, pageID)
	if err != nil {
		return nil, err
	}

	blocks, err := f.fetchChildren(ctx, pageID)
	if err != nil {
		return nil, err
	}

	return &domain.Page{ID: pageID, Title: title, Blocks: blocks}, nil
}

// Watch is not supported by the API fetcher.
func (f *Fetcher) Watch(_ context.Context, _ string) (<-chan domain.Page, error) {
	return nil, fmt.Errorf("notion fetcher does not support watch: %w", domain.ErrInvalidInput)
}

// Close releases resources and drops the subtree cache.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cache = nil
	return nil
}

func (f *Fetcher) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fetcher) fetchTitle(ctx context.Context, pageID string) (string, error) {
	var page *notionapi.Page
	err := f.withRetry(ctx, func() error {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		page, err = f.pages.Get(ctx, notionapi.PageID(pageID))
		return err
	})
	if err != nil {
		return "", mapAPIError(err)
	}

	for _, prop := range page.Properties {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			return domain.PlainText(convertRichText(tp.Title)), nil
		}
	}
	return "", nil
}

// fetchChildren resolves the child subtree of one block. Concurrent calls
// for the same block collapse into one API walk; resolved subtrees are
// cached until Close. Callers must treat the result as read-only.
func (f *Fetcher) fetchChildren(ctx context.Context, blockID string) ([]domain.Block, error) {
	f.mu.Lock()
	if cached, ok := f.cache[blockID]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	result, err, _ := f.group.Do(blockID, func() (any, error) {
		blocks, err := f.walkChildren(ctx, blockID)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		if !f.closed {
			f.cache[blockID] = blocks
		}
		f.mu.Unlock()
		return blocks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Block), nil
}

func (f *Fetcher) walkChildren(ctx context.Context, blockID string) ([]domain.Block, error) {
	var out []domain.Block
	cursor := notionapi.Cursor("")

	for {
		var resp *notionapi.GetChildrenResponse
		err := f.withRetry(ctx, func() error {
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}
			pagination := &notionapi.Pagination{PageSize: PageSize}
			if cursor != "" {
				pagination.StartCursor = cursor
			}
			var err error
			resp, err = f.blocks.GetChildren(ctx, notionapi.BlockID(blockID), pagination)
			return err
		})
		if err != nil {
			return nil, mapAPIError(err)
		}

		for _, raw := range resp.Results {
			converted := convertBlock(raw)
			if raw.GetHasChildren() {
				children, err := f.fetchChildren(ctx, string(raw.GetID()))
				if err != nil {
					return nil, err
				}
				converted.Children = children
			}
			out = append(out, converted)
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}

	return out, nil
}

// withRetry runs fn up to MaxRetries+1 times, backing off between attempts
// on transient API errors.
func (f *Fetcher) withRetry(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || attempt >= MaxRetries || !isRetryable(err) {
			return err
		}

		logger.Warn("transient API error, retrying in %s: %v", delay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// isRetryable reports whether an API error is worth retrying: rate limit
// responses and server-side failures.
func isRetryable(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Status >= 500
	}
	return false
}

// mapAPIError translates API failures to domain errors where a sentinel
// exists, wrapping so callers can errors.Is them.
func mapAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *notionapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Status == 404:
		return fmt.Errorf("%w: %s", domain.ErrPageNotFound, apiErr.Message)
	case apiErr.Status == 401 || apiErr.Status == 403:
		return fmt.Errorf("%w: %s", domain.ErrAuthInvalid, apiErr.Message)
	case apiErr.Status == 429:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Message)
	default:
		return err
	}
}
