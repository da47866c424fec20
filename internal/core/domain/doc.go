// Package domain defines the core business entities for lessonpage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Block: One node of the source CMS's content tree
//   - RichText: An annotated text run within a block
//   - Section: One classified, semantically typed output unit
//   - Page: A fully hydrated lesson page as delivered by a fetcher
//   - Lesson: A parsed page, ready for rendering
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
