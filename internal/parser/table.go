package parser

import (
	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// Header keyword groups for table classification. Timeline needs a time
// header plus an activity or duration header; vocabulary needs term plus
// definition; checklist needs item plus quantity.
var (
	timeHeaderKeywords       = []string{"time", "when", "schedule"}
	activityHeaderKeywords   = []string{"activity", "topic", "step"}
	durationHeaderKeywords   = []string{"duration", "length"}
	notesHeaderKeywords      = []string{"note", "comment", "detail"}
	termHeaderKeywords       = []string{"term", "word", "concept"}
	definitionHeaderKeywords = []string{"definition", "meaning", "description"}
	itemHeaderKeywords       = []string{"item", "material", "tool"}
	quantityHeaderKeywords   = []string{"quantity", "amount", "qty"}
)

// handleTable classifies a table block and emits the matching section.
// Unclassifiable or empty tables contribute nothing.
func (p *Parser) handleTable(st *parseState, b domain.Block) {
	headers, rows := tableCells(b)
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	if s, ok := p.timelineFromTable(headers, rows); ok {
		p.emit(st, s)
		return
	}
	if s, ok := p.vocabularyFromTable(headers, rows); ok {
		p.emit(st, s)
		return
	}
	if s, ok := p.checklistFromTable(headers, rows); ok {
		p.emit(st, s)
		return
	}
}

// tableCells flattens a table block into header texts and data-row texts.
// The first row is the header row; rows that are not table_row blocks are
// skipped.
func tableCells(b domain.Block) (headers []string, rows [][]string) {
	for _, child := range b.Children {
		if child.Type != domain.BlockTypeTableRow {
			continue
		}
		cells := make([]string, 0, len(child.Cells))
		for _, cell := range child.Cells {
			cells = append(cells, domain.PlainText(cell))
		}
		if headers == nil {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	return headers, rows
}

// findHeader returns the index of the first header containing any keyword,
// or -1.
func findHeader(headers []string, keywords []string) int {
	for i, h := range headers {
		if containsAny(h, keywords) {
			return i
		}
	}
	return -1
}

// cellAt is a bounds-safe cell accessor; a negative or out-of-range column
// resolves to the empty string.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func (p *Parser) timelineFromTable(headers []string, rows [][]string) (domain.TimelineSection, bool) {
	timeCol := findHeader(headers, timeHeaderKeywords)
	activityCol := findHeader(headers, activityHeaderKeywords)
	durationCol := findHeader(headers, durationHeaderKeywords)
	if timeCol < 0 || (activityCol < 0 && durationCol < 0) {
		return domain.TimelineSection{}, false
	}
	notesCol := findHeader(headers, notesHeaderKeywords)

	out := make([]domain.TimelineRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TimelineRow{
			Time:     cellAt(row, timeCol),
			Activity: cellAt(row, activityCol),
			Duration: cellAt(row, durationCol),
			Notes:    cellAt(row, notesCol),
		})
	}
	return domain.TimelineSection{ID: p.newID(), Rows: out}, true
}

func (p *Parser) vocabularyFromTable(headers []string, rows [][]string) (domain.VocabularySection, bool) {
	termCol := findHeader(headers, termHeaderKeywords)
	defCol := findHeader(headers, definitionHeaderKeywords)
	if termCol < 0 || defCol < 0 {
		return domain.VocabularySection{}, false
	}

	entries := make([]domain.VocabularyEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.VocabularyEntry{
			Term:       cellAt(row, termCol),
			Definition: cellAt(row, defCol),
		})
	}
	return domain.VocabularySection{ID: p.newID(), Entries: entries}, true
}

func (p *Parser) checklistFromTable(headers []string, rows [][]string) (domain.ChecklistSection, bool) {
	itemCol := findHeader(headers, itemHeaderKeywords)
	qtyCol := findHeader(headers, quantityHeaderKeywords)
	if itemCol < 0 || qtyCol < 0 {
		return domain.ChecklistSection{}, false
	}

	items := make([]domain.ChecklistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.ChecklistItem{
			Text:     cellAt(row, itemCol),
			Quantity: cellAt(row, qtyCol),
		})
	}
	return domain.ChecklistSection{
		ID:       p.newID(),
		Category: checklistCategoryFromHeading(cellAt(headers, itemCol)),
		Items:    items,
	}, true
}

// rawTableFrom keeps a table's literal cells for embedding inside a
// teaching step, without reclassification.
func rawTableFrom(b domain.Block) domain.RawTable {
	headers, rows := tableCells(b)
	return domain.RawTable{Headers: headers, Rows: rows}
}
