package notion

import (
	"github.com/jomei/notionapi"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// convertBlock maps one API block to the domain model. Conversion is total:
// unrecognised block types come back as BlockTypeUnknown and the parser's
// generic fallback deals with them.
func convertBlock(raw notionapi.Block) domain.Block {
	out := domain.Block{ID: string(raw.GetID())}

	switch b := raw.(type) {
	case *notionapi.ParagraphBlock:
		out.Type = domain.BlockTypeParagraph
		out.Text = convertRichText(b.Paragraph.RichText)
		out.Color = string(b.Paragraph.Color)
	case *notionapi.Heading1Block:
		out.Type = domain.BlockTypeHeading1
		out.Text = convertRichText(b.Heading1.RichText)
	case *notionapi.Heading2Block:
		out.Type = domain.BlockTypeHeading2
		out.Text = convertRichText(b.Heading2.RichText)
	case *notionapi.Heading3Block:
		out.Type = domain.BlockTypeHeading3
		out.Text = convertRichText(b.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		out.Type = domain.BlockTypeBulletedListItem
		out.Text = convertRichText(b.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		out.Type = domain.BlockTypeNumberedListItem
		out.Text = convertRichText(b.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		out.Type = domain.BlockTypeToDo
		out.Text = convertRichText(b.ToDo.RichText)
		out.Checked = b.ToDo.Checked
	case *notionapi.ToggleBlock:
		out.Type = domain.BlockTypeToggle
		out.Text = convertRichText(b.Toggle.RichText)
	case *notionapi.CalloutBlock:
		out.Type = domain.BlockTypeCallout
		out.Text = convertRichText(b.Callout.RichText)
		out.Color = string(b.Callout.Color)
		if b.Callout.Icon != nil && b.Callout.Icon.Emoji != nil {
			out.Icon = string(*b.Callout.Icon.Emoji)
		}
	case *notionapi.QuoteBlock:
		out.Type = domain.BlockTypeQuote
		out.Text = convertRichText(b.Quote.RichText)
	case *notionapi.DividerBlock:
		out.Type = domain.BlockTypeDivider
	case *notionapi.TableBlock:
		out.Type = domain.BlockTypeTable
	case *notionapi.TableRowBlock:
		out.Type = domain.BlockTypeTableRow
		out.Cells = convertCells(b.TableRow.Cells)
	case *notionapi.CodeBlock:
		out.Type = domain.BlockTypeCode
		out.Text = convertRichText(b.Code.RichText)
		out.Language = b.Code.Language
	case *notionapi.ImageBlock:
		out.Type = domain.BlockTypeImage
		out.URL = fileURL(b.Image.File, b.Image.External)
		out.Caption = convertRichText(b.Image.Caption)
	case *notionapi.VideoBlock:
		out.Type = domain.BlockTypeVideo
		out.URL = fileURL(b.Video.File, b.Video.External)
		out.Caption = convertRichText(b.Video.Caption)
	case *notionapi.AudioBlock:
		out.Type = domain.BlockTypeAudio
		out.URL = fileURL(b.Audio.File, b.Audio.External)
		out.Caption = convertRichText(b.Audio.Caption)
	case *notionapi.PdfBlock:
		out.Type = domain.BlockTypePDF
		out.URL = fileURL(b.Pdf.File, b.Pdf.External)
		out.Caption = convertRichText(b.Pdf.Caption)
	case *notionapi.FileBlock:
		out.Type = domain.BlockTypeFile
		out.URL = fileURL(b.File.File, b.File.External)
		out.Caption = convertRichText(b.File.Caption)
	case *notionapi.EmbedBlock:
		out.Type = domain.BlockTypeEmbed
		out.URL = b.Embed.URL
		out.Caption = convertRichText(b.Embed.Caption)
	case *notionapi.BookmarkBlock:
		out.Type = domain.BlockTypeBookmark
		out.URL = b.Bookmark.URL
		out.Caption = convertRichText(b.Bookmark.Caption)
	case *notionapi.ChildPageBlock:
		out.Type = domain.BlockTypeChildPage
		if b.ChildPage.Title != "" {
			out.Text = []domain.RichText{{PlainText: b.ChildPage.Title}}
		}
	case *notionapi.LinkToPageBlock:
		out.Type = domain.BlockTypeLinkToPage
	case *notionapi.ColumnListBlock:
		out.Type = domain.BlockTypeColumnList
	case *notionapi.ColumnBlock:
		out.Type = domain.BlockTypeColumn
	default:
		out.Type = domain.BlockTypeUnknown
	}

	return out
}

// convertRichText maps API rich text runs, preserving annotations and
// links. Nil input converts to an empty slice so consumers never see nil
// text on a text-bearing block.
func convertRichText(runs []notionapi.RichText) []domain.RichText {
	out := make([]domain.RichText, 0, len(runs))
	for _, run := range runs {
		converted := domain.RichText{
			PlainText: run.PlainText,
			Href:      run.Href,
		}
		if run.Annotations != nil {
			converted.Annotations = domain.Annotations{
				Bold:          run.Annotations.Bold,
				Italic:        run.Annotations.Italic,
				Strikethrough: run.Annotations.Strikethrough,
				Underline:     run.Annotations.Underline,
				Code:          run.Annotations.Code,
				Color:         string(run.Annotations.Color),
			}
		}
		out = append(out, converted)
	}
	return out
}

func convertCells(cells [][]notionapi.RichText) [][]domain.RichText {
	out := make([][]domain.RichText, 0, len(cells))
	for _, cell := range cells {
		out = append(out, convertRichText(cell))
	}
	return out
}

// fileURL resolves the URL of a hosted or external file object.
func fileURL(hosted, external *notionapi.FileObject) string {
	if hosted != nil && hosted.URL != "" {
		return hosted.URL
	}
	if external != nil {
		return external.URL
	}
	return ""
}
