package domain

// Lesson is a parsed page: the typed section sequence consumers render
// without re-interpreting raw blocks. Treat it as read-only.
type Lesson struct {
	// PageID is the source CMS page identifier.
	PageID string `json:"page_id"`

	// Title is the page title.
	Title string `json:"title,omitempty"`

	// Sections are the classified sections, either in document order or
	// in teaching order depending on how the lesson was produced.
	Sections Sections `json:"sections"`
}
