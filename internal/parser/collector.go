package parser

import (
	"strings"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// collectTeachingStep aggregates the blocks following an explicit
// guided-step heading into one TeachingStep section. It scans forward from
// the position after the heading and stops before the next guided-step
// heading, before any level-1 heading, or at end of input. Returns the
// section and the index the outer scan resumes from.
func (p *Parser) collectTeachingStep(st *parseState, h sectionHeading) (domain.TeachingStepSection, int) {
	step := domain.TeachingStepSection{
		ID:         p.newID(),
		StepNumber: h.Number,
		Title:      h.Title,
	}

	pending := noteNone
	i := st.pos + 1
	for i < len(st.blocks) {
		b := st.blocks[i]

		// Boundaries: a level-1 heading always ends the section; other
		// headings only when they start another guided step.
		if b.Type == domain.BlockTypeHeading1 {
			break
		}
		if b.IsHeading() {
			if _, ok := matchSectionHeading(b.PlainText()); ok {
				break
			}
		}

		switch b.Type {
		case domain.BlockTypeParagraph:
			pending = p.collectParagraph(&step, b.PlainText(), pending)
		case domain.BlockTypeHeading2, domain.BlockTypeHeading3:
			// Sub-headings inside a step carry no structure of their own.
			if text := b.PlainText(); text != "" {
				step.Paragraphs = append(step.Paragraphs, text)
			}
		case domain.BlockTypeBulletedListItem, domain.BlockTypeNumberedListItem, domain.BlockTypeToDo:
			collectActivity(&step, b)
		case domain.BlockTypeToggle:
			pending = p.collectToggle(&step, b, pending)
		case domain.BlockTypeCallout:
			if text := b.PlainText(); text != "" {
				step.Tips = append(step.Tips, text)
			}
		case domain.BlockTypeImage, domain.BlockTypeVideo, domain.BlockTypePDF,
			domain.BlockTypeFile, domain.BlockTypeEmbed:
			step.Resources = append(step.Resources, p.resourceFrom(b))
		case domain.BlockTypeTable:
			step.Tables = append(step.Tables, rawTableFrom(b))
		case domain.BlockTypeQuote:
			if text := b.PlainText(); text != "" {
				step.Quotes = append(step.Quotes, text)
			}
		}
		i++
	}

	return step, i
}

// collectParagraph routes one paragraph into the step's fields: instructor
// notes first, then a pending multi-block note body, then a standalone
// duration, then the instruction slot, then ordinary paragraphs.
func (p *Parser) collectParagraph(step *domain.TeachingStepSection, text string, pending noteKind) noteKind {
	if text == "" {
		return pending
	}

	if kind, inline, ok := matchInstructorNote(text); ok {
		if inline == "" {
			return kind
		}
		setInstructorNote(step, kind, inline)
		return noteNone
	}

	if pending != noteNone {
		setInstructorNote(step, pending, text)
		return noteNone
	}

	if step.Duration == "" && isDurationOnly(text) {
		step.Duration = extractDuration(text)
		return pending
	}

	if step.Instruction == "" {
		step.Instruction = text
		return pending
	}

	step.Paragraphs = append(step.Paragraphs, text)
	return pending
}

// setInstructorNote writes a note body; later occurrences overwrite earlier
// ones.
func setInstructorNote(step *domain.TeachingStepSection, kind noteKind, text string) {
	switch kind {
	case noteTeachingApproach:
		step.TeachingApproach = text
	case noteDifferentiation:
		step.Differentiation = text
	}
}

// collectActivity records a list item as an activity, including one level
// of nested bullet/numbered children.
func collectActivity(step *domain.TeachingStepSection, b domain.Block) {
	if text := b.PlainText(); text != "" {
		step.Activities = append(step.Activities, splitActivityDuration(text))
	}
	for _, child := range b.Children {
		switch child.Type {
		case domain.BlockTypeBulletedListItem, domain.BlockTypeNumberedListItem, domain.BlockTypeToDo:
			if text := child.PlainText(); text != "" {
				step.Activities = append(step.Activities, splitActivityDuration(text))
			}
		}
	}
}

// collectToggle unwraps a toggle inside a step. Toggle paragraphs route
// through the instructor-note detector; a bullet-glyph-prefixed paragraph
// counts as an activity; list children are activities.
func (p *Parser) collectToggle(step *domain.TeachingStepSection, b domain.Block, pending noteKind) noteKind {
	for _, child := range b.Children {
		switch child.Type {
		case domain.BlockTypeParagraph:
			text := child.PlainText()
			if text == "" {
				continue
			}
			if glyph := strings.TrimLeft(text, "•-– "); glyph != text && glyph != "" {
				step.Activities = append(step.Activities, splitActivityDuration(glyph))
				continue
			}
			pending = p.collectParagraph(step, text, pending)
		case domain.BlockTypeBulletedListItem, domain.BlockTypeNumberedListItem, domain.BlockTypeToDo:
			collectActivity(step, child)
		}
	}
	return pending
}
