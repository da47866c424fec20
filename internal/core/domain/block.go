package domain

import "strings"

// BlockType identifies the shape of a block's payload.
// The set is closed: it mirrors the source CMS's block vocabulary.
type BlockType string

// Block types understood by the parser.
const (
	BlockTypeParagraph        BlockType = "paragraph"
	BlockTypeHeading1         BlockType = "heading_1"
	BlockTypeHeading2         BlockType = "heading_2"
	BlockTypeHeading3         BlockType = "heading_3"
	BlockTypeBulletedListItem BlockType = "bulleted_list_item"
	BlockTypeNumberedListItem BlockType = "numbered_list_item"
	BlockTypeToDo             BlockType = "to_do"
	BlockTypeToggle           BlockType = "toggle"
	BlockTypeCallout          BlockType = "callout"
	BlockTypeQuote            BlockType = "quote"
	BlockTypeDivider          BlockType = "divider"
	BlockTypeTable            BlockType = "table"
	BlockTypeTableRow         BlockType = "table_row"
	BlockTypeCode             BlockType = "code"
	BlockTypeImage            BlockType = "image"
	BlockTypeVideo            BlockType = "video"
	BlockTypeAudio            BlockType = "audio"
	BlockTypeFile             BlockType = "file"
	BlockTypePDF              BlockType = "pdf"
	BlockTypeEmbed            BlockType = "embed"
	BlockTypeBookmark         BlockType = "bookmark"
	BlockTypeChildPage        BlockType = "child_page"
	BlockTypeLinkToPage       BlockType = "link_to_page"
	BlockTypeColumnList       BlockType = "column_list"
	BlockTypeColumn           BlockType = "column"

	// BlockTypeUnknown marks an API block type the converter does not
	// recognise. The parser's generic fallback handles it.
	BlockTypeUnknown BlockType = "unknown"
)

// Annotations carries the formatting flags of a rich text run.
type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// RichText is one annotated text run as stored by the source CMS.
type RichText struct {
	// PlainText is the run's text content, unformatted.
	PlainText string `json:"plain_text"`

	// Href is the hyperlink target, empty when the run is not a link.
	Href string `json:"href,omitempty"`

	// Annotations are the run's formatting flags.
	Annotations Annotations `json:"annotations,omitempty"`
}

// Block is one node of the source CMS's content tree.
// The payload fields populated depend on Type; the fetch layer guarantees
// the shape, and absent rich text is always an empty slice, never nil text.
type Block struct {
	// ID is the CMS's stable identifier for the block.
	ID string `json:"id"`

	// Type tags which payload fields are meaningful.
	Type BlockType `json:"type"`

	// Text is the block's rich text payload (paragraphs, headings,
	// list items, callouts, quotes, toggles, code).
	Text []RichText `json:"text,omitempty"`

	// Caption is the caption rich text of media blocks.
	Caption []RichText `json:"caption,omitempty"`

	// Cells holds a table row's cells, one rich text run list per column.
	Cells [][]RichText `json:"cells,omitempty"`

	// Checked is the completion state of a to-do block.
	Checked bool `json:"checked,omitempty"`

	// Color is the block-level colour (callouts and text blocks).
	Color string `json:"color,omitempty"`

	// Icon is the emoji icon of a callout, when present.
	Icon string `json:"icon,omitempty"`

	// URL is the target of media, embed and bookmark blocks.
	URL string `json:"url,omitempty"`

	// Language is the language tag of a code block.
	Language string `json:"language,omitempty"`

	// Children are the block's resolved child blocks, in order.
	Children []Block `json:"children,omitempty"`
}

// PlainText flattens rich text runs into a single trimmed string.
// Nil and empty runs resolve to the empty string.
func PlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.PlainText)
	}
	return strings.TrimSpace(sb.String())
}

// PlainText returns the block's own text content as a single string.
func (b Block) PlainText() string {
	return PlainText(b.Text)
}

// CaptionText returns the block's caption as a single string.
func (b Block) CaptionText() string {
	return PlainText(b.Caption)
}

// IsHeading reports whether the block is a heading of any level.
func (b Block) IsHeading() bool {
	switch b.Type {
	case BlockTypeHeading1, BlockTypeHeading2, BlockTypeHeading3:
		return true
	default:
		return false
	}
}

// HeadingLevel returns 1-3 for heading blocks and 0 otherwise.
func (b Block) HeadingLevel() int {
	switch b.Type {
	case BlockTypeHeading1:
		return 1
	case BlockTypeHeading2:
		return 2
	case BlockTypeHeading3:
		return 3
	default:
		return 0
	}
}

// Page is a fully hydrated lesson page as delivered by a fetcher:
// every block's children are already resolved before parsing begins.
type Page struct {
	// ID is the CMS page identifier.
	ID string `json:"id"`

	// Title is the page title, empty when the CMS supplies none.
	Title string `json:"title,omitempty"`

	// Blocks are the page's root blocks in document order.
	Blocks []Block `json:"blocks"`
}
