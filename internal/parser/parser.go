package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// Parser turns a page's block list into classified sections.
// A Parser is stateless between calls; Parse builds a fresh accumulator
// each time and is safe for concurrent use.
type Parser struct {
	newID func() string
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator overrides section ID minting. Useful for tests that need
// stable identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(p *Parser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// New creates a parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// parseState is the scan accumulator: sections emitted so far, the pending
// prose buffer, the guided-step counter and the scan position. One is
// created per block list, including recursive descents into toggles.
type parseState struct {
	blocks      []domain.Block
	sections    domain.Sections
	prose       []string
	stepCounter int
	pos         int
}

// Parse classifies root blocks into sections, in document order.
// It never fails: unmatched content degrades to prose and unusable blocks
// are dropped.
func (p *Parser) Parse(blocks []domain.Block) domain.Sections {
	return p.parseList(blocks)
}

// parseList runs the scan loop over one block list. Toggle children recurse
// through here with their own state; the caller splices the result.
func (p *Parser) parseList(blocks []domain.Block) domain.Sections {
	st := &parseState{blocks: blocks}

	for st.pos < len(st.blocks) {
		b := st.blocks[st.pos]
		switch b.Type {
		case domain.BlockTypeCallout:
			p.handleCallout(st, b)
			st.pos++
		case domain.BlockTypeTable:
			p.handleTable(st, b)
			st.pos++
		case domain.BlockTypeHeading1, domain.BlockTypeHeading2, domain.BlockTypeHeading3:
			p.handleHeading(st, b)
		case domain.BlockTypeNumberedListItem:
			p.handleNumberedRun(st)
		case domain.BlockTypeImage, domain.BlockTypeVideo, domain.BlockTypePDF,
			domain.BlockTypeFile, domain.BlockTypeEmbed:
			p.emit(st, p.resourceFrom(b))
			st.pos++
		case domain.BlockTypeParagraph, domain.BlockTypeQuote,
			domain.BlockTypeBulletedListItem, domain.BlockTypeToDo,
			domain.BlockTypeCode:
			p.appendProse(st, b)
			st.pos++
		case domain.BlockTypeDivider:
			p.flushProse(st)
			st.pos++
		case domain.BlockTypeToggle:
			p.handleToggle(st, b)
			st.pos++
		default:
			p.handleFallback(st, b)
			st.pos++
		}
	}

	p.flushProse(st)
	return st.sections
}

// emit flushes pending prose, then appends the section. Prose always lands
// before the section that interrupted it.
func (p *Parser) emit(st *parseState, s domain.Section) {
	p.flushProse(st)
	st.sections = append(st.sections, s)
}

// flushProse drains the prose buffer into one Prose section, paragraphs
// separated by a blank line. An empty buffer emits nothing.
func (p *Parser) flushProse(st *parseState) {
	if len(st.prose) == 0 {
		return
	}
	content := strings.Join(st.prose, "\n\n")
	st.prose = nil
	st.sections = append(st.sections, domain.ProseSection{
		ID:      p.newID(),
		Content: content,
	})
}

// handleCallout emits a Safety section when the callout reads as safety
// content or carries a safety colour; anything else becomes a prose line.
func (p *Parser) handleCallout(st *parseState, b domain.Block) {
	text := b.PlainText()
	if !isSafetyContent(text) && !isSafetyContent(b.Icon) && !isSafetyColor(b.Color) {
		if text != "" {
			st.prose = append(st.prose, text)
		}
		return
	}

	title, body := splitSafetyTitle(text)
	var items []string
	for _, child := range b.Children {
		switch child.Type {
		case domain.BlockTypeBulletedListItem, domain.BlockTypeToDo:
			if t := child.PlainText(); t != "" {
				items = append(items, t)
			}
		}
	}

	p.emit(st, domain.SafetySection{
		ID:    p.newID(),
		Level: safetyLevelFromColor(b.Color),
		Title: title,
		Body:  body,
		Items: items,
	})
}

// splitSafetyTitle splits callout text at the first colon, but only when
// the colon falls within the first 50 characters.
func splitSafetyTitle(text string) (title, body string) {
	idx := strings.Index(text, ":")
	if idx <= 0 || idx >= 50 {
		return "", text
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
}

// handleHeading resolves the three heading outcomes in priority order:
// explicit guided-step marker, heading-plus-list construct, plain heading.
func (p *Parser) handleHeading(st *parseState, b domain.Block) {
	text := b.PlainText()

	if h, ok := matchSectionHeading(text); ok {
		if h.Number == 0 {
			h.Number = st.stepCounter + 1
		}
		step, next := p.collectTeachingStep(st, h)
		st.stepCounter = h.Number
		p.emit(st, step)
		st.pos = next
		return
	}

	run := listRunAfter(st.blocks, st.pos+1)
	if run >= 1 && isChecklistHeading(text) {
		p.emit(st, p.checklistFromRun(st, text, run))
		st.pos += 1 + run
		return
	}
	if run >= 2 && isOutcomesHeading(text) {
		p.emit(st, p.outcomesFromRun(st, text, run))
		st.pos += 1 + run
		return
	}
	if run >= 2 && isCheckpointHeading(text) {
		p.emit(st, p.checkpointFromRun(st, text, run))
		st.pos += 1 + run
		return
	}

	level := b.HeadingLevel()
	p.emit(st, domain.HeadingSection{ID: p.newID(), Level: level, Text: text})
	if level <= 2 {
		st.stepCounter = 0
	}
	st.pos++
}

// listRunAfter counts the run of consecutive bulleted or to-do items
// starting at from. Numbered items do not qualify.
func listRunAfter(blocks []domain.Block, from int) int {
	n := 0
	for i := from; i < len(blocks); i++ {
		switch blocks[i].Type {
		case domain.BlockTypeBulletedListItem, domain.BlockTypeToDo:
			n++
		default:
			return n
		}
	}
	return n
}

func (p *Parser) checklistFromRun(st *parseState, heading string, run int) domain.ChecklistSection {
	items := make([]domain.ChecklistItem, 0, run)
	for i := st.pos + 1; i <= st.pos+run; i++ {
		if text := st.blocks[i].PlainText(); text != "" {
			items = append(items, extractQuantity(text))
		}
	}
	return domain.ChecklistSection{
		ID:       p.newID(),
		Category: checklistCategoryFromHeading(heading),
		Title:    heading,
		Items:    items,
	}
}

func (p *Parser) outcomesFromRun(st *parseState, heading string, run int) domain.OutcomesSection {
	outcomes := make([]string, 0, run)
	for i := st.pos + 1; i <= st.pos+run; i++ {
		if text := st.blocks[i].PlainText(); text != "" {
			outcomes = append(outcomes, text)
		}
	}
	return domain.OutcomesSection{ID: p.newID(), Title: heading, Outcomes: outcomes}
}

func (p *Parser) checkpointFromRun(st *parseState, heading string, run int) domain.CheckpointSection {
	items := make([]domain.CheckpointItem, 0, run)
	for i := st.pos + 1; i <= st.pos+run; i++ {
		if text := st.blocks[i].PlainText(); text != "" {
			items = append(items, splitCheckpointItem(text))
		}
	}
	return domain.CheckpointSection{ID: p.newID(), Title: heading, Items: items}
}

// splitCheckpointItem splits a criterion from its description at the first
// colon or dash separator.
func splitCheckpointItem(text string) domain.CheckpointItem {
	for _, sep := range []string{":", " - ", " – "} {
		if idx := strings.Index(text, sep); idx > 0 {
			return domain.CheckpointItem{
				Criterion:   strings.TrimSpace(text[:idx]),
				Description: strings.TrimSpace(text[idx+len(sep):]),
			}
		}
	}
	return domain.CheckpointItem{Criterion: text}
}

// handleNumberedRun consumes a run of numbered list items. Items with an
// explicit "Step N:" or "Section N:" prefix each become a TeachingStep;
// a run without the prefix flattens into one renumbered prose entry.
func (p *Parser) handleNumberedRun(st *parseState) {
	first := st.blocks[st.pos]
	if stepPrefixPattern.MatchString(first.PlainText()) {
		for st.pos < len(st.blocks) && st.blocks[st.pos].Type == domain.BlockTypeNumberedListItem {
			b := st.blocks[st.pos]
			m := stepPrefixPattern.FindStringSubmatch(b.PlainText())
			if m == nil {
				return
			}
			p.emit(st, p.stepFromListItem(st, b, m))
			st.pos++
		}
		return
	}

	var lines []string
	n := 0
	for st.pos < len(st.blocks) && st.blocks[st.pos].Type == domain.BlockTypeNumberedListItem {
		b := st.blocks[st.pos]
		text := b.PlainText()
		if stepPrefixPattern.MatchString(text) {
			break
		}
		n++
		lines = append(lines, fmt.Sprintf("%d. %s", n, text))
		for _, child := range b.Children {
			switch child.Type {
			case domain.BlockTypeParagraph:
				if t := child.PlainText(); t != "" {
					lines = append(lines, "   "+t)
				}
			case domain.BlockTypeBulletedListItem:
				if t := child.PlainText(); t != "" {
					lines = append(lines, "   • "+t)
				}
			}
		}
		st.pos++
	}
	if len(lines) > 0 {
		st.prose = append(st.prose, strings.Join(lines, "\n"))
	}
}

// stepFromListItem builds a TeachingStep from one "Step N: ..." or
// "Section N: ..." list item. Nested bullets become tips, or warnings when
// they read as safety content.
func (p *Parser) stepFromListItem(st *parseState, b domain.Block, m []string) domain.TeachingStepSection {
	number := extractStepNumber(b.PlainText())
	if number == 0 {
		// "Section N:" prefixes fall through extractStepNumber; the
		// prefix match already captured the digits.
		number, _ = strconv.Atoi(m[1])
	}
	act := splitActivityDuration(strings.TrimSpace(m[2]))

	step := domain.TeachingStepSection{
		ID:          p.newID(),
		StepNumber:  number,
		Instruction: act.Text,
		Duration:    act.Duration,
	}
	st.stepCounter = number

	for _, child := range b.Children {
		switch child.Type {
		case domain.BlockTypeBulletedListItem, domain.BlockTypeToDo:
			text := child.PlainText()
			if text == "" {
				continue
			}
			if isSafetyContent(text) {
				step.Warnings = append(step.Warnings, text)
			} else {
				step.Tips = append(step.Tips, text)
			}
		}
	}
	return step
}

// resourceFrom maps a media block to a Resource section. Embeds infer video
// from known hosts and default to file.
func (p *Parser) resourceFrom(b domain.Block) domain.ResourceSection {
	var rtype domain.ResourceType
	switch b.Type {
	case domain.BlockTypeImage:
		rtype = domain.ResourceTypeImage
	case domain.BlockTypeVideo:
		rtype = domain.ResourceTypeVideo
	case domain.BlockTypePDF:
		rtype = domain.ResourceTypePDF
	case domain.BlockTypeEmbed:
		rtype = resourceTypeForEmbed(b.URL)
	default:
		rtype = domain.ResourceTypeFile
	}
	return domain.ResourceSection{
		ID:           p.newID(),
		ResourceType: rtype,
		URL:          b.URL,
		Title:        b.CaptionText(),
	}
}

// appendProse adds one formatted line to the prose buffer. Empty text is
// dropped; markers survive as literal prefixes.
func (p *Parser) appendProse(st *parseState, b domain.Block) {
	text := b.PlainText()
	if text == "" {
		return
	}
	switch b.Type {
	case domain.BlockTypeQuote:
		st.prose = append(st.prose, "> "+text)
	case domain.BlockTypeBulletedListItem:
		st.prose = append(st.prose, "• "+text)
	case domain.BlockTypeToDo:
		if b.Checked {
			st.prose = append(st.prose, "☑ "+text)
		} else {
			st.prose = append(st.prose, "☐ "+text)
		}
	case domain.BlockTypeCode:
		st.prose = append(st.prose, "```"+b.Language+"\n"+text+"\n```")
	default:
		st.prose = append(st.prose, text)
	}
}

// handleToggle emits a level-3 heading for the toggle's own text, then
// recurses into its children as an independent block list and splices the
// resulting sections in place.
func (p *Parser) handleToggle(st *parseState, b domain.Block) {
	p.emit(st, domain.HeadingSection{ID: p.newID(), Level: 3, Text: b.PlainText()})
	st.sections = append(st.sections, p.parseList(b.Children)...)
}

// handleFallback salvages any rich text from unrecognised block types,
// trying the text payload then the caption; with neither, the block is
// dropped silently.
func (p *Parser) handleFallback(st *parseState, b domain.Block) {
	text := b.PlainText()
	if text == "" {
		text = b.CaptionText()
	}
	if text != "" {
		st.prose = append(st.prose, text)
	}
}
