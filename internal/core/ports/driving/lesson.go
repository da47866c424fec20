package driving

import (
	"context"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// LessonService turns page identifiers into parsed lessons.
// This is what the CLI and any embedding caller drive.
type LessonService interface {
	// ParsePage fetches a page and classifies it into sections, in
	// teaching order.
	ParsePage(ctx context.Context, pageID string) (*domain.Lesson, error)

	// ParsePageDocumentOrder is ParsePage without reordering: sections
	// stay in scan order.
	ParsePageDocumentOrder(ctx context.Context, pageID string) (*domain.Lesson, error)

	// WatchPage re-parses a page whenever the underlying fetcher reports
	// a change. Only available when the fetcher supports watching.
	WatchPage(ctx context.Context, pageID string) (<-chan domain.Lesson, error)
}
