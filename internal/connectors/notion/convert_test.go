package notion

import (
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

func TestConvertBlock_Paragraph(t *testing.T) {
	got := convertBlock(paragraphBlock("b1", "hello", false))
	assert.Equal(t, "b1", got.ID)
	assert.Equal(t, domain.BlockTypeParagraph, got.Type)
	assert.Equal(t, "hello", got.PlainText())
}

func TestConvertBlock_Headings(t *testing.T) {
	h2 := &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{ID: "h2", Type: notionapi.BlockTypeHeading2},
		Heading2:   notionapi.Heading{RichText: []notionapi.RichText{{PlainText: "Materials"}}},
	}
	got := convertBlock(h2)
	assert.Equal(t, domain.BlockTypeHeading2, got.Type)
	assert.Equal(t, "Materials", got.PlainText())
}

func TestConvertBlock_Callout(t *testing.T) {
	emoji := notionapi.Emoji("⚠️")
	callout := &notionapi.CalloutBlock{
		BasicBlock: notionapi.BasicBlock{ID: "c1", Type: notionapi.BlockTypeCallout},
		Callout: notionapi.Callout{
			RichText: []notionapi.RichText{{PlainText: "Safety first"}},
			Icon:     &notionapi.Icon{Type: "emoji", Emoji: &emoji},
			Color:    "red_background",
		},
	}

	got := convertBlock(callout)
	assert.Equal(t, domain.BlockTypeCallout, got.Type)
	assert.Equal(t, "Safety first", got.PlainText())
	assert.Equal(t, "⚠️", got.Icon)
	assert.Equal(t, "red_background", got.Color)
}

func TestConvertBlock_ToDo(t *testing.T) {
	todo := &notionapi.ToDoBlock{
		BasicBlock: notionapi.BasicBlock{ID: "t1", Type: notionapi.BlockTypeToDo},
		ToDo: notionapi.ToDo{
			RichText: []notionapi.RichText{{PlainText: "buy clamps"}},
			Checked:  true,
		},
	}

	got := convertBlock(todo)
	assert.Equal(t, domain.BlockTypeToDo, got.Type)
	assert.True(t, got.Checked)
}

func TestConvertBlock_TableRow(t *testing.T) {
	row := &notionapi.TableRowBlock{
		BasicBlock: notionapi.BasicBlock{ID: "r1", Type: notionapi.BlockTypeTableRowBlock},
		TableRow: notionapi.TableRow{
			Cells: [][]notionapi.RichText{
				{{PlainText: "Time"}},
				{{PlainText: "Activity"}},
			},
		},
	}

	got := convertBlock(row)
	assert.Equal(t, domain.BlockTypeTableRow, got.Type)
	require.Len(t, got.Cells, 2)
	assert.Equal(t, "Time", domain.PlainText(got.Cells[0]))
	assert.Equal(t, "Activity", domain.PlainText(got.Cells[1]))
}

func TestConvertBlock_Image(t *testing.T) {
	t.Run("hosted file wins", func(t *testing.T) {
		img := &notionapi.ImageBlock{
			BasicBlock: notionapi.BasicBlock{ID: "i1", Type: notionapi.BlockTypeImage},
			Image: notionapi.Image{
				File:     &notionapi.FileObject{URL: "https://files.example.com/a.png"},
				External: &notionapi.FileObject{URL: "https://cdn.example.com/a.png"},
				Caption:  []notionapi.RichText{{PlainText: "The frame"}},
			},
		}
		got := convertBlock(img)
		assert.Equal(t, domain.BlockTypeImage, got.Type)
		assert.Equal(t, "https://files.example.com/a.png", got.URL)
		assert.Equal(t, "The frame", got.CaptionText())
	})

	t.Run("external fallback", func(t *testing.T) {
		img := &notionapi.ImageBlock{
			BasicBlock: notionapi.BasicBlock{ID: "i2", Type: notionapi.BlockTypeImage},
			Image: notionapi.Image{
				External: &notionapi.FileObject{URL: "https://cdn.example.com/b.png"},
			},
		}
		assert.Equal(t, "https://cdn.example.com/b.png", convertBlock(img).URL)
	})
}

func TestConvertBlock_Code(t *testing.T) {
	code := &notionapi.CodeBlock{
		BasicBlock: notionapi.BasicBlock{ID: "k1", Type: notionapi.BlockTypeCode},
		Code: notionapi.Code{
			RichText: []notionapi.RichText{{PlainText: "print('hi')"}},
			Language: "python",
		},
	}

	got := convertBlock(code)
	assert.Equal(t, domain.BlockTypeCode, got.Type)
	assert.Equal(t, "python", got.Language)
}

func TestConvertBlock_Unknown(t *testing.T) {
	unsupported := &notionapi.UnsupportedBlock{
		BasicBlock: notionapi.BasicBlock{ID: "x1", Type: "unsupported"},
	}
	got := convertBlock(unsupported)
	assert.Equal(t, "x1", got.ID)
	assert.Equal(t, domain.BlockTypeUnknown, got.Type)
}

func TestConvertRichText(t *testing.T) {
	t.Run("nil converts to empty slice", func(t *testing.T) {
		got := convertRichText(nil)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("annotations and links survive", func(t *testing.T) {
		runs := []notionapi.RichText{{
			PlainText:   "bold link",
			Href:        "https://example.com",
			Annotations: &notionapi.Annotations{Bold: true, Color: "red"},
		}}
		got := convertRichText(runs)
		require.Len(t, got, 1)
		assert.Equal(t, "bold link", got[0].PlainText)
		assert.Equal(t, "https://example.com", got[0].Href)
		assert.True(t, got[0].Annotations.Bold)
		assert.Equal(t, "red", got[0].Annotations.Color)
	})
}
