// Package snapshot implements the BlockFetcher interface over an exported
// page dump on disk. It exists for offline use and fixtures: a page fetched
// once (or exported by other tooling) can be re-parsed without network
// access, and watched for edits during authoring.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driven"
	"github.com/custodia-labs/lessonpage/internal/logger"
)

// Type is the fetcher type identifier.
const Type = "snapshot"

// Ensure Fetcher implements the interface.
var _ driven.BlockFetcher = (*Fetcher)(nil)

// Fetcher reads a domain.Page from a JSON file. The requested page ID is
// checked against the dump's ID when the dump carries one.
type Fetcher struct {
	path string
}

// NewFetcher creates a snapshot fetcher for the given file path.
func NewFetcher(path string) *Fetcher {
	return &Fetcher{path: path}
}

// Type returns the fetcher type identifier.
func (f *Fetcher) Type() string {
	return Type
}

// Capabilities returns what this fetcher supports.
func (f *Fetcher) Capabilities() driven.FetcherCapabilities {
	return driven.FetcherCapabilities{
		SupportsWatch: true,
		RequiresAuth:  false,
	}
}

// FetchPage loads and decodes the snapshot file. An empty pageID accepts
// whatever page the file holds; a non-empty one must match the dump.
func (f *Fetcher) FetchPage(_ context.Context, pageID string) (*domain.Page, error) {
	page, err := f.load()
	if err != nil {
		return nil, err
	}
	if pageID != "" && page.ID != "" && page.ID != pageID {
		return nil, fmt.Errorf("snapshot holds page %s, not %s: %w", page.ID, pageID, domain.ErrPageNotFound)
	}
	return page, nil
}

// Watch emits the page on every write to the snapshot file until the
// context is cancelled. The current content is emitted first so consumers
// always start with a parse.
func (f *Fetcher) Watch(ctx context.Context, pageID string) (<-chan domain.Page, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", f.path, err)
	}

	pages := make(chan domain.Page)
	go func() {
		defer close(pages)
		defer watcher.Close()

		emit := func() {
			page, err := f.FetchPage(ctx, pageID)
			if err != nil {
				logger.Warn("snapshot reload failed: %v", err)
				return
			}
			select {
			case pages <- *page:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != f.path {
					continue
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					logger.Debug("snapshot changed: %s", event.Name)
					emit()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("snapshot watch error: %v", err)
			}
		}
	}()
	return pages, nil
}

// Close releases resources. The snapshot fetcher holds none between calls.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) load() (*domain.Page, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var page domain.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	return &page, nil
}
