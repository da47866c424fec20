package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// Compiled patterns for the text heuristics. Every matcher is total and
// case-insensitive where relevant; first match wins and extraction order is
// fixed by the call sites.
var (
	// Quantity shapes, in priority order: "item x N", "N x item",
	// "(N) item", "N item".
	quantityTrailingPattern = regexp.MustCompile(`^(.*?)\s*[xX×]\s*(\d+)\s*$`)
	quantityLeadingPattern  = regexp.MustCompile(`^(\d+)\s*[xX×]\s*(.+)$`)
	quantityParenPattern    = regexp.MustCompile(`^\((\d+)\)\s*(.+)$`)
	quantityBarePattern     = regexp.MustCompile(`^(\d+)\s+(.+)$`)

	stepColonPattern = regexp.MustCompile(`(?i)^step\s+(\d+)\s*[:.]`)
	stepBarePattern  = regexp.MustCompile(`^(\d+)\.\s`)
	stepWordPattern  = regexp.MustCompile(`(?i)^step\s+(one|two|three|four|five|six|seven|eight|nine|ten)\b`)

	// Durations: "(15 mins)", "~5 min", "10 minutes". The capture keeps the
	// duration text as written, without parentheses or approximation marks.
	durationPattern         = regexp.MustCompile(`(?i)[~≈]?\s*\(?\s*(\d+\s*min(?:ute)?s?)\s*\)?`)
	durationOnlyPattern     = regexp.MustCompile(`(?i)^[~≈]?\s*\(?\s*\d+\s*min(?:ute)?s?\s*\)?\.?$`)
	activityDurationPattern = regexp.MustCompile(`(?i)^(.*?)\s*\(\s*[~≈]?\s*(\d+\s*min(?:ute)?s?)\s*\)\s*$`)

	// Guided-step heading shapes. The bare numbered form is checked before
	// symbol stripping so a leading digit is never damaged.
	numberedHeadingPattern = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	sectionHeadingPattern  = regexp.MustCompile(`(?i)^(?:section|day|session|part|lesson|phase|module|week|unit|stage|step)\s+(\d+)(?:\s*[-–]\s*\d+)?\s*:\s*(.+)$`)

	// Explicit step prefix on numbered list items.
	stepPrefixPattern = regexp.MustCompile(`(?i)^(?:step|section)\s+(\d+)\s*:\s*(.*)$`)
)

var spelledNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var safetyKeywords = []string{
	"safety", "warning", "caution", "danger", "hazard", "careful",
	"first aid", "ppe", "protective", "emergency", "supervision", "risk",
}

var safetyEmojis = []string{"⚠", "🚨", "⛔", "❗", "🔥", "☠", "🧯", "🦺"}

// Heading-intent keyword families. "checklist" intentionally appears in both
// the checklist and checkpoint lists; the fixed evaluation order
// (checklist, outcomes, checkpoint) decides ambiguous headings.
var (
	checklistHeadingKeywords = []string{
		"material", "supplies", "tool", "equipment", "you will need",
		"you'll need", "what you need", "checklist", "required items",
		"prep list", "before you start",
	}
	outcomesHeadingKeywords = []string{
		"outcome", "objective", "goal", "students will", "learners will",
		"by the end", "learning intention",
	}
	checkpointHeadingKeywords = []string{
		"assessment", "checkpoint", "check for understanding",
		"success criteria", "evaluation", "checklist", "exit ticket",
	}
	teachingHeadingKeywords = []string{
		"teaching step", "lesson step", "instruction", "procedure",
		"delivery", "lesson flow", "activities", "method", "walkthrough",
	}
)

var videoHostSubstrings = []string{
	"youtube.com", "youtu.be", "vimeo.com", "loom.com", "wistia.com",
	"dailymotion.com",
}

// containsAny reports whether the lowercased text contains any needle.
func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// isSafetyContent reports whether text reads as a safety notice, by keyword
// or by emoji.
func isSafetyContent(text string) bool {
	if text == "" {
		return false
	}
	if containsAny(text, safetyKeywords) {
		return true
	}
	for _, e := range safetyEmojis {
		if strings.Contains(text, e) {
			return true
		}
	}
	return false
}

// isSafetyColor reports whether a block colour is in the red/yellow/orange
// family that marks a callout as safety content on its own.
func isSafetyColor(color string) bool {
	lower := strings.ToLower(color)
	return strings.Contains(lower, "red") ||
		strings.Contains(lower, "yellow") ||
		strings.Contains(lower, "orange")
}

// safetyLevelFromColor grades severity from the callout colour.
func safetyLevelFromColor(color string) domain.SafetyLevel {
	lower := strings.ToLower(color)
	switch {
	case strings.Contains(lower, "red"):
		return domain.SafetyLevelCritical
	case strings.Contains(lower, "yellow"), strings.Contains(lower, "orange"):
		return domain.SafetyLevelWarning
	default:
		return domain.SafetyLevelCaution
	}
}

func isChecklistHeading(text string) bool  { return containsAny(text, checklistHeadingKeywords) }
func isOutcomesHeading(text string) bool   { return containsAny(text, outcomesHeadingKeywords) }
func isCheckpointHeading(text string) bool { return containsAny(text, checkpointHeadingKeywords) }
func isTeachingHeading(text string) bool   { return containsAny(text, teachingHeadingKeywords) }

// checklistCategoryFromHeading maps heading phrasing to a category.
func checklistCategoryFromHeading(text string) domain.ChecklistCategory {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tool"):
		return domain.ChecklistCategoryTools
	case strings.Contains(lower, "equipment"):
		return domain.ChecklistCategoryEquipment
	case strings.Contains(lower, "prepar"), strings.Contains(lower, "before"):
		return domain.ChecklistCategoryPreparation
	default:
		return domain.ChecklistCategoryMaterials
	}
}

// extractQuantity splits a checklist line into item text and quantity.
// Four shapes are tried in priority order; on no match the whole line is the
// item text.
func extractQuantity(text string) domain.ChecklistItem {
	text = strings.TrimSpace(text)
	if m := quantityTrailingPattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		return domain.ChecklistItem{Text: strings.TrimSpace(m[1]), Quantity: m[2]}
	}
	if m := quantityLeadingPattern.FindStringSubmatch(text); m != nil {
		return domain.ChecklistItem{Text: strings.TrimSpace(m[2]), Quantity: m[1]}
	}
	if m := quantityParenPattern.FindStringSubmatch(text); m != nil {
		return domain.ChecklistItem{Text: strings.TrimSpace(m[2]), Quantity: m[1]}
	}
	if m := quantityBarePattern.FindStringSubmatch(text); m != nil {
		return domain.ChecklistItem{Text: strings.TrimSpace(m[2]), Quantity: m[1]}
	}
	return domain.ChecklistItem{Text: text}
}

// extractStepNumber pulls a step number from "Step N:", "Step N.", a bare
// "N. " prefix, or a spelled-out "Step one" through "Step ten".
// Returns 0 when no shape matches.
func extractStepNumber(text string) int {
	text = strings.TrimSpace(text)
	if m := stepColonPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := stepBarePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := stepWordPattern.FindStringSubmatch(text); m != nil {
		return spelledNumbers[strings.ToLower(m[1])]
	}
	return 0
}

// extractDuration returns the first duration mention as written
// ("5 mins", "15 minutes"), or the empty string.
func extractDuration(text string) string {
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// isDurationOnly reports whether a paragraph is nothing but a short duration
// marker such as "(15 mins)" or "~10 min".
func isDurationOnly(text string) bool {
	text = strings.TrimSpace(text)
	return len(text) <= 24 && durationOnlyPattern.MatchString(text)
}

// splitActivityDuration splits "text (N min)" into an activity with its
// duration; without the trailing parenthesised duration the whole line is
// the activity text.
func splitActivityDuration(text string) domain.Activity {
	text = strings.TrimSpace(text)
	if m := activityDurationPattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		return domain.Activity{Text: strings.TrimSpace(m[1]), Duration: strings.TrimSpace(m[2])}
	}
	return domain.Activity{Text: text}
}

// sectionHeading is a matched guided-step heading.
type sectionHeading struct {
	// Number is the step number; for ranges ("DAY 2-3") the low end.
	Number int

	// Title is the text after the marker.
	Title string
}

// matchSectionHeading recognises explicit guided-step headings: the bare
// "N. Title" form first (before symbol stripping, so the digit survives),
// then "KEYWORD N: Title" and "KEYWORD N-M: Title" after stripping leading
// emoji and symbols.
func matchSectionHeading(text string) (sectionHeading, bool) {
	text = strings.TrimSpace(text)
	if m := numberedHeadingPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return sectionHeading{Number: n, Title: strings.TrimSpace(m[2])}, true
	}
	stripped := stripLeadingSymbols(text)
	if m := sectionHeadingPattern.FindStringSubmatch(stripped); m != nil {
		n, _ := strconv.Atoi(m[1])
		return sectionHeading{Number: n, Title: strings.TrimSpace(m[2])}, true
	}
	return sectionHeading{}, false
}

// stripLeadingSymbols drops leading emoji, punctuation and whitespace up to
// the first letter or digit.
func stripLeadingSymbols(text string) string {
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return text[i:]
		}
	}
	return ""
}

// noteKind identifies an instructor-note field.
type noteKind int

const (
	noteNone noteKind = iota
	noteTeachingApproach
	noteDifferentiation
)

// matchInstructorNote recognises "Teaching Approach" and "Differentiation"
// notes. The inline text is whatever follows a colon on the same line; a
// bare keyword returns ok with empty inline, signalling that the note body
// spans the following blocks.
func matchInstructorNote(text string) (noteKind, string, bool) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	kind := noteNone
	var keyword string
	switch {
	case strings.HasPrefix(lower, "teaching approach"):
		kind, keyword = noteTeachingApproach, "teaching approach"
	case strings.HasPrefix(lower, "differentiation"):
		kind, keyword = noteDifferentiation, "differentiation"
	default:
		return noteNone, "", false
	}

	rest := strings.TrimSpace(trimmed[len(keyword):])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return kind, rest, true
}

// resourceTypeForEmbed infers a resource type from an embed URL.
func resourceTypeForEmbed(url string) domain.ResourceType {
	if containsAny(url, videoHostSubstrings) {
		return domain.ResourceTypeVideo
	}
	return domain.ResourceTypeFile
}
