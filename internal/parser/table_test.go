package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

func TestParse_TimelineTable(t *testing.T) {
	p := New()
	sections := p.Parse([]domain.Block{tableBlock(
		[]string{"Time", "Activity", "Duration", "Notes"},
		[]string{"09:00", "Introduction", "15 mins", "Welcome participants"},
		[]string{"09:15", "Demonstration", "30 mins", ""},
	)})

	require.Len(t, sections, 1)
	tl, ok := sections[0].(domain.TimelineSection)
	require.True(t, ok)
	require.Len(t, tl.Rows, 2)
	assert.Equal(t, domain.TimelineRow{
		Time:     "09:00",
		Activity: "Introduction",
		Duration: "15 mins",
		Notes:    "Welcome participants",
	}, tl.Rows[0])
	assert.Equal(t, "09:15", tl.Rows[1].Time)
	assert.Empty(t, tl.Rows[1].Notes)
}

func TestParse_TimelineTable_TimeAndDurationOnly(t *testing.T) {
	p := New()
	sections := p.Parse([]domain.Block{tableBlock(
		[]string{"When", "Length"},
		[]string{"Morning", "45 mins"},
	)})

	require.Len(t, sections, 1)
	tl, ok := sections[0].(domain.TimelineSection)
	require.True(t, ok)
	assert.Equal(t, "Morning", tl.Rows[0].Time)
	assert.Equal(t, "45 mins", tl.Rows[0].Duration)
	assert.Empty(t, tl.Rows[0].Activity)
}

func TestParse_VocabularyTable(t *testing.T) {
	p := New()
	sections := p.Parse([]domain.Block{tableBlock(
		[]string{"Term", "Definition"},
		[]string{"Mortise", "A cavity cut to receive a tenon"},
		[]string{"Tenon", "A projecting tongue that fits a mortise"},
	)})

	require.Len(t, sections, 1)
	v, ok := sections[0].(domain.VocabularySection)
	require.True(t, ok)
	require.Len(t, v.Entries, 2)
	assert.Equal(t, domain.VocabularyEntry{
		Term:       "Mortise",
		Definition: "A cavity cut to receive a tenon",
	}, v.Entries[0])
}

func TestParse_ChecklistTable(t *testing.T) {
	p := New()
	sections := p.Parse([]domain.Block{tableBlock(
		[]string{"Tool", "Qty"},
		[]string{"Tenon saw", "2"},
		[]string{"Chisel", "4"},
	)})

	require.Len(t, sections, 1)
	cl, ok := sections[0].(domain.ChecklistSection)
	require.True(t, ok)
	assert.Equal(t, domain.ChecklistCategoryTools, cl.Category)
	require.Len(t, cl.Items, 2)
	assert.Equal(t, domain.ChecklistItem{Text: "Tenon saw", Quantity: "2"}, cl.Items[0])
}

func TestParse_TableClassificationPriority(t *testing.T) {
	// A table naming both a time column and an item/quantity pair reads as
	// a timeline; timeline wins over checklist.
	p := New()
	sections := p.Parse([]domain.Block{tableBlock(
		[]string{"Time", "Step", "Item", "Quantity"},
		[]string{"09:00", "Glue up", "Clamps", "6"},
	)})

	require.Len(t, sections, 1)
	assert.Equal(t, domain.SectionTypeTimeline, sections[0].SectionType())
}

func TestParse_UnclassifiableTables(t *testing.T) {
	p := New()

	t.Run("unknown headers emit nothing", func(t *testing.T) {
		sections := p.Parse([]domain.Block{tableBlock(
			[]string{"Alpha", "Beta"},
			[]string{"1", "2"},
		)})
		assert.Empty(t, sections)
	})

	t.Run("header row without data emits nothing", func(t *testing.T) {
		sections := p.Parse([]domain.Block{tableBlock(
			[]string{"Time", "Activity"},
		)})
		assert.Empty(t, sections)
	})

	t.Run("table with no rows emits nothing", func(t *testing.T) {
		sections := p.Parse([]domain.Block{{Type: domain.BlockTypeTable}})
		assert.Empty(t, sections)
	})

	t.Run("ragged rows resolve missing cells to empty", func(t *testing.T) {
		sections := p.Parse([]domain.Block{tableBlock(
			[]string{"Time", "Activity", "Notes"},
			[]string{"09:00"},
		)})
		require.Len(t, sections, 1)
		row := sections[0].(domain.TimelineSection).Rows[0]
		assert.Equal(t, "09:00", row.Time)
		assert.Empty(t, row.Activity)
		assert.Empty(t, row.Notes)
	})
}

func TestRawTableFrom(t *testing.T) {
	raw := rawTableFrom(tableBlock(
		[]string{"Alpha", "Beta"},
		[]string{"1", "2"},
	))
	assert.Equal(t, []string{"Alpha", "Beta"}, raw.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, raw.Rows)
}
