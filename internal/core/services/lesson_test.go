package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driven"
)

// fakeFetcher is an in-memory BlockFetcher for service tests.
type fakeFetcher struct {
	page         *domain.Page
	fetchErr     error
	watchErr     error
	watchCh      chan domain.Page
	caps         driven.FetcherCapabilities
	fetchedPages []string
}

func (f *fakeFetcher) Type() string { return "fake" }
func (f *fakeFetcher) Close() error { return nil }

func (f *fakeFetcher) Capabilities() driven.FetcherCapabilities { return f.caps }

func (f *fakeFetcher) FetchPage(_ context.Context, pageID string) (*domain.Page, error) {
	f.fetchedPages = append(f.fetchedPages, pageID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.page, nil
}

func (f *fakeFetcher) Watch(_ context.Context, _ string) (<-chan domain.Page, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return f.watchCh, nil
}

func lessonPage() *domain.Page {
	return &domain.Page{
		ID:    "page-1",
		Title: "Bamboo Frames",
		Blocks: []domain.Block{
			{Type: domain.BlockTypeParagraph, Text: []domain.RichText{{PlainText: "Welcome."}}},
			{Type: domain.BlockTypeCallout, Text: []domain.RichText{{PlainText: "Safety: goggles on"}}, Color: "red"},
		},
	}
}

func TestParsePage(t *testing.T) {
	fetcher := &fakeFetcher{page: lessonPage()}
	svc := NewLessonService(fetcher)

	lesson, err := svc.ParsePage(context.Background(), "page-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"page-1"}, fetcher.fetchedPages)
	assert.Equal(t, "page-1", lesson.PageID)
	assert.Equal(t, "Bamboo Frames", lesson.Title)

	// Teaching order puts the safety section before the prose.
	require.Len(t, lesson.Sections, 2)
	assert.Equal(t, domain.SectionTypeSafety, lesson.Sections[0].SectionType())
	assert.Equal(t, domain.SectionTypeProse, lesson.Sections[1].SectionType())
}

func TestParsePageDocumentOrder(t *testing.T) {
	svc := NewLessonService(&fakeFetcher{page: lessonPage()})

	lesson, err := svc.ParsePageDocumentOrder(context.Background(), "page-1")
	require.NoError(t, err)
	require.Len(t, lesson.Sections, 2)
	assert.Equal(t, domain.SectionTypeProse, lesson.Sections[0].SectionType())
	assert.Equal(t, domain.SectionTypeSafety, lesson.Sections[1].SectionType())
}

func TestParsePage_Errors(t *testing.T) {
	t.Run("nil fetcher", func(t *testing.T) {
		svc := NewLessonService(nil)
		_, err := svc.ParsePage(context.Background(), "page-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("fetch failure is wrapped", func(t *testing.T) {
		svc := NewLessonService(&fakeFetcher{fetchErr: domain.ErrPageNotFound})
		_, err := svc.ParsePage(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrPageNotFound)
	})
}

func TestWatchPage(t *testing.T) {
	t.Run("unsupported fetcher", func(t *testing.T) {
		svc := NewLessonService(&fakeFetcher{})
		_, err := svc.WatchPage(context.Background(), "page-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("watch error is wrapped", func(t *testing.T) {
		svc := NewLessonService(&fakeFetcher{
			caps:     driven.FetcherCapabilities{SupportsWatch: true},
			watchErr: errors.New("boom"),
		})
		_, err := svc.WatchPage(context.Background(), "page-1")
		assert.ErrorContains(t, err, "watch page")
	})

	t.Run("pages stream as reordered lessons", func(t *testing.T) {
		pages := make(chan domain.Page, 1)
		fetcher := &fakeFetcher{
			caps:    driven.FetcherCapabilities{SupportsWatch: true},
			watchCh: pages,
		}
		svc := NewLessonService(fetcher)

		lessons, err := svc.WatchPage(context.Background(), "page-1")
		require.NoError(t, err)

		pages <- *lessonPage()
		close(pages)

		select {
		case lesson, ok := <-lessons:
			require.True(t, ok)
			assert.Equal(t, "page-1", lesson.PageID)
			require.Len(t, lesson.Sections, 2)
			assert.Equal(t, domain.SectionTypeSafety, lesson.Sections[0].SectionType())
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for lesson")
		}

		select {
		case _, ok := <-lessons:
			assert.False(t, ok, "channel should close after the stream ends")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for close")
		}
	})
}
