package parser

import (
	"github.com/custodia-labs/lessonpage/internal/core/domain"
)

// bucket is a delivery-order slot. The declaration order is the output
// order.
type bucket int

const (
	bucketSafety bucket = iota
	bucketOverview
	bucketTimeline
	bucketMaterials
	bucketVocabulary
	bucketTeachingSteps
	bucketAssessment
	bucketResources
	bucketOther

	bucketCount
)

// bucketNone marks the absence of a current group.
const bucketNone bucket = -1

var (
	overviewHeadingKeywords = []string{
		"overview", "introduction", "about", "summary", "background",
		"context",
	}
	timelineHeadingKeywords = []string{
		"timeline", "schedule", "agenda", "timing",
	}
	vocabularyHeadingKeywords = []string{
		"vocabulary", "glossary", "key terms", "terminology", "definitions",
	}
	resourcesHeadingKeywords = []string{
		"resource", "further reading", "links", "references", "attachments",
	}
)

// Reorder re-buckets sections into teaching order: safety, overview,
// timeline, materials, vocabulary, teaching steps, assessment, resources,
// other. Relative order within a bucket is preserved; sections are neither
// created nor dropped. A heading that names a group pulls subsequent
// untyped content into that group until the next group-defining heading.
func Reorder(sections domain.Sections) domain.Sections {
	buckets := make([]domain.Sections, bucketCount)
	group := bucketNone

	for _, s := range sections {
		switch sec := s.(type) {
		case domain.SafetySection:
			// Safety always leads, independent of the current group.
			buckets[bucketSafety] = append(buckets[bucketSafety], sec)
		case domain.OutcomesSection:
			buckets[bucketOverview] = append(buckets[bucketOverview], sec)
		case domain.TimelineSection:
			buckets[bucketTimeline] = append(buckets[bucketTimeline], sec)
		case domain.ChecklistSection:
			buckets[bucketMaterials] = append(buckets[bucketMaterials], sec)
		case domain.VocabularySection:
			buckets[bucketVocabulary] = append(buckets[bucketVocabulary], sec)
		case domain.TeachingStepSection:
			buckets[bucketTeachingSteps] = append(buckets[bucketTeachingSteps], sec)
		case domain.CheckpointSection:
			buckets[bucketAssessment] = append(buckets[bucketAssessment], sec)
		case domain.ResourceSection:
			buckets[bucketResources] = append(buckets[bucketResources], sec)
		case domain.HeadingSection:
			if b, ok := headingBucket(sec.Text); ok {
				buckets[b] = append(buckets[b], sec)
				group = b
				continue
			}
			b := group
			if b == bucketNone {
				b = bucketOther
			}
			buckets[b] = append(buckets[b], sec)
		default:
			b := group
			if b == bucketNone {
				b = bucketOther
			}
			buckets[b] = append(buckets[b], s)
		}
	}

	out := make(domain.Sections, 0, len(sections))
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}

// headingBucket classifies heading text against the group keyword families,
// in fixed order. Materials is tested with the checklist family, teaching
// with the teaching-steps family and assessment with the checkpoint family,
// matching the scan-time classifiers.
func headingBucket(text string) (bucket, bool) {
	switch {
	case containsAny(text, overviewHeadingKeywords):
		return bucketOverview, true
	case containsAny(text, timelineHeadingKeywords):
		return bucketTimeline, true
	case isChecklistHeading(text):
		return bucketMaterials, true
	case containsAny(text, vocabularyHeadingKeywords):
		return bucketVocabulary, true
	case isTeachingHeading(text):
		return bucketTeachingSteps, true
	case isCheckpointHeading(text):
		return bucketAssessment, true
	case containsAny(text, resourcesHeadingKeywords):
		return bucketResources, true
	default:
		return bucketNone, false
	}
}
