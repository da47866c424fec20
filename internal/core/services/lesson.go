// Package services implements the driving ports over the driven ones.
package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driven"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driving"
	"github.com/custodia-labs/lessonpage/internal/logger"
	"github.com/custodia-labs/lessonpage/internal/parser"
)

// Ensure LessonService implements the interface.
var _ driving.LessonService = (*LessonService)(nil)

// LessonService fetches pages through a BlockFetcher and classifies them
// with the parser.
type LessonService struct {
	fetcher driven.BlockFetcher
	parser  *parser.Parser
}

// NewLessonService creates a lesson service over the given fetcher.
func NewLessonService(fetcher driven.BlockFetcher) *LessonService {
	return &LessonService{
		fetcher: fetcher,
		parser:  parser.New(),
	}
}

// ParsePage fetches, classifies and reorders a page into teaching order.
func (s *LessonService) ParsePage(ctx context.Context, pageID string) (*domain.Lesson, error) {
	lesson, err := s.parse(ctx, pageID)
	if err != nil {
		return nil, err
	}
	lesson.Sections = parser.Reorder(lesson.Sections)
	return lesson, nil
}

// ParsePageDocumentOrder fetches and classifies a page, keeping scan order.
func (s *LessonService) ParsePageDocumentOrder(ctx context.Context, pageID string) (*domain.Lesson, error) {
	return s.parse(ctx, pageID)
}

// WatchPage re-parses the page on every change event from the fetcher.
// The returned channel closes when the fetcher's stream ends or the context
// is cancelled.
func (s *LessonService) WatchPage(ctx context.Context, pageID string) (<-chan domain.Lesson, error) {
	if s.fetcher == nil {
		return nil, domain.ErrInvalidInput
	}
	if !s.fetcher.Capabilities().SupportsWatch {
		return nil, fmt.Errorf("fetcher %q: %w", s.fetcher.Type(), domain.ErrInvalidInput)
	}

	pages, err := s.fetcher.Watch(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	lessons := make(chan domain.Lesson)
	go func() {
		defer close(lessons)
		for page := range pages {
			sections := parser.Reorder(s.parser.Parse(page.Blocks))
			lesson := domain.Lesson{PageID: page.ID, Title: page.Title, Sections: sections}
			select {
			case lessons <- lesson:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lessons, nil
}

func (s *LessonService) parse(ctx context.Context, pageID string) (*domain.Lesson, error) {
	if s.fetcher == nil {
		return nil, domain.ErrInvalidInput
	}

	logger.Debug("fetching page %s via %s", pageID, s.fetcher.Type())
	page, err := s.fetcher.FetchPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	logger.Debug("classifying %d root blocks", len(page.Blocks))
	sections := s.parser.Parse(page.Blocks)
	logger.Debug("emitted %d sections", len(sections))

	return &domain.Lesson{
		PageID:   page.ID,
		Title:    page.Title,
		Sections: sections,
	}, nil
}
