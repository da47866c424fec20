package domain

import (
	"encoding/json"
	"fmt"
)

// SectionType discriminates the Section union.
// Renderers must switch exhaustively and treat unrecognised values as an
// unknown section; the set may grow but existing tags never change meaning.
type SectionType string

// Section types emitted by the parser.
const (
	SectionTypeSafety       SectionType = "safety"
	SectionTypeTimeline     SectionType = "timeline"
	SectionTypeChecklist    SectionType = "checklist"
	SectionTypeOutcomes     SectionType = "outcomes"
	SectionTypeCheckpoint   SectionType = "checkpoint"
	SectionTypeTeachingStep SectionType = "teaching_step"
	SectionTypeVocabulary   SectionType = "vocabulary"
	SectionTypeResource     SectionType = "resource"
	SectionTypeProse        SectionType = "prose"
	SectionTypeHeading      SectionType = "heading"
)

// Section is one classified output unit. The concrete type is one of the
// *Section structs in this file; identifiers are unique within one parse.
// Sections are immutable once returned: ownership passes to the caller.
type Section interface {
	// SectionID returns the section's unique identifier.
	SectionID() string

	// SectionType returns the union discriminator.
	SectionType() SectionType
}

// SafetyLevel grades a safety section's severity.
type SafetyLevel string

// Safety levels, most severe first.
const (
	SafetyLevelCritical SafetyLevel = "critical"
	SafetyLevelWarning  SafetyLevel = "warning"
	SafetyLevelCaution  SafetyLevel = "caution"
)

// ChecklistCategory groups a checklist by what it enumerates.
type ChecklistCategory string

// Checklist categories.
const (
	ChecklistCategoryMaterials   ChecklistCategory = "materials"
	ChecklistCategoryTools       ChecklistCategory = "tools"
	ChecklistCategoryEquipment   ChecklistCategory = "equipment"
	ChecklistCategoryPreparation ChecklistCategory = "preparation"
)

// ResourceType tags what kind of asset a resource section points at.
type ResourceType string

// Resource types.
const (
	ResourceTypeImage ResourceType = "image"
	ResourceTypeVideo ResourceType = "video"
	ResourceTypePDF   ResourceType = "pdf"
	ResourceTypeFile  ResourceType = "file"
)

// SafetySection is a safety warning distilled from a callout.
type SafetySection struct {
	ID    string      `json:"id"`
	Level SafetyLevel `json:"level"`
	Title string      `json:"title,omitempty"`
	Body  string      `json:"body"`
	Items []string    `json:"items,omitempty"`
}

// TimelineRow is one scheduled slot of a timeline.
type TimelineRow struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Duration string `json:"duration,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// TimelineSection is a timed agenda extracted from a table.
type TimelineSection struct {
	ID   string        `json:"id"`
	Rows []TimelineRow `json:"rows"`
}

// ChecklistItem is one entry of a checklist, with an optional quantity.
type ChecklistItem struct {
	Text     string `json:"text"`
	Quantity string `json:"quantity,omitempty"`
}

// ChecklistSection enumerates materials, tools, equipment or prep work.
type ChecklistSection struct {
	ID       string            `json:"id"`
	Category ChecklistCategory `json:"category"`
	Title    string            `json:"title,omitempty"`
	Items    []ChecklistItem   `json:"items"`
}

// OutcomesSection lists the learning outcomes of a lesson.
type OutcomesSection struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Outcomes []string `json:"outcomes"`
}

// CheckpointItem is one assessment criterion.
type CheckpointItem struct {
	Criterion   string `json:"criterion"`
	Description string `json:"description,omitempty"`
}

// CheckpointSection is an assessment checkpoint.
type CheckpointSection struct {
	ID    string           `json:"id"`
	Title string           `json:"title,omitempty"`
	Items []CheckpointItem `json:"items"`
}

// Activity is one activity within a teaching step.
type Activity struct {
	Text     string `json:"text"`
	Duration string `json:"duration,omitempty"`
}

// RawTable is a table embedded in a teaching step, kept as literal cells.
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// TeachingStepSection is one unit of instructor-led activity.
type TeachingStepSection struct {
	ID               string            `json:"id"`
	StepNumber       int               `json:"step_number"`
	Title            string            `json:"title,omitempty"`
	Instruction      string            `json:"instruction,omitempty"`
	Duration         string            `json:"duration,omitempty"`
	Activities       []Activity        `json:"activities,omitempty"`
	TeachingApproach string            `json:"teaching_approach,omitempty"`
	Differentiation  string            `json:"differentiation,omitempty"`
	Tips             []string          `json:"tips,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
	Paragraphs       []string          `json:"paragraphs,omitempty"`
	Resources        []ResourceSection `json:"resources,omitempty"`
	Tables           []RawTable        `json:"tables,omitempty"`
	Quotes           []string          `json:"quotes,omitempty"`
}

// VocabularyEntry is one term/definition pair.
type VocabularyEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// VocabularySection holds term/definition pairs from a vocabulary table.
type VocabularySection struct {
	ID      string            `json:"id"`
	Entries []VocabularyEntry `json:"entries"`
}

// ResourceSection points at an embedded asset.
type ResourceSection struct {
	ID           string       `json:"id"`
	ResourceType ResourceType `json:"resource_type"`
	URL          string       `json:"url"`
	Title        string       `json:"title,omitempty"`
}

// ProseSection is free text that matched no richer shape.
// Paragraphs are joined by a blank line; bullet, quote, checkbox and code
// markers survive as literal prefixes.
type ProseSection struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// HeadingSection is a plain heading that introduced no special construct.
type HeadingSection struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

func (s SafetySection) SectionID() string       { return s.ID }
func (s TimelineSection) SectionID() string     { return s.ID }
func (s ChecklistSection) SectionID() string    { return s.ID }
func (s OutcomesSection) SectionID() string     { return s.ID }
func (s CheckpointSection) SectionID() string   { return s.ID }
func (s TeachingStepSection) SectionID() string { return s.ID }
func (s VocabularySection) SectionID() string   { return s.ID }
func (s ResourceSection) SectionID() string     { return s.ID }
func (s ProseSection) SectionID() string        { return s.ID }
func (s HeadingSection) SectionID() string      { return s.ID }

func (SafetySection) SectionType() SectionType       { return SectionTypeSafety }
func (TimelineSection) SectionType() SectionType     { return SectionTypeTimeline }
func (ChecklistSection) SectionType() SectionType    { return SectionTypeChecklist }
func (OutcomesSection) SectionType() SectionType     { return SectionTypeOutcomes }
func (CheckpointSection) SectionType() SectionType   { return SectionTypeCheckpoint }
func (TeachingStepSection) SectionType() SectionType { return SectionTypeTeachingStep }
func (VocabularySection) SectionType() SectionType   { return SectionTypeVocabulary }
func (ResourceSection) SectionType() SectionType     { return SectionTypeResource }
func (ProseSection) SectionType() SectionType        { return SectionTypeProse }
func (HeadingSection) SectionType() SectionType      { return SectionTypeHeading }

// Sections is an ordered section list with type-tagged JSON encoding.
// Each element marshals to its struct fields plus a leading "type" key.
type Sections []Section

// MarshalJSON implements json.Marshaler.
func (ss Sections) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(ss))
	for _, s := range ss {
		body, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		tag := fmt.Sprintf(`{"type":%q`, string(s.SectionType()))
		if len(body) <= 2 {
			// Empty object: no fields to splice after the tag.
			out = append(out, json.RawMessage(tag+"}"))
			continue
		}
		out = append(out, json.RawMessage(tag+","+string(body[1:])))
	}
	return json.Marshal(out)
}
