package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsMarshalJSON(t *testing.T) {
	ss := Sections{
		SafetySection{ID: "s1", Level: SafetyLevelCritical, Body: "goggles on"},
		ProseSection{ID: "p1", Content: "hello"},
	}

	data, err := json.Marshal(ss)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "safety", decoded[0]["type"])
	assert.Equal(t, "s1", decoded[0]["id"])
	assert.Equal(t, "critical", decoded[0]["level"])
	assert.Equal(t, "goggles on", decoded[0]["body"])
	assert.NotContains(t, decoded[0], "title")

	assert.Equal(t, "prose", decoded[1]["type"])
	assert.Equal(t, "hello", decoded[1]["content"])
}

func TestSectionsMarshalJSON_TypeLeadsEachObject(t *testing.T) {
	data, err := json.Marshal(Sections{HeadingSection{ID: "h", Level: 2, Text: "Setup"}})
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"heading","id":"h","level":2,"text":"Setup"}]`, string(data))
}

func TestSectionsMarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Sections{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSectionsMarshalJSON_AllTypesTagged(t *testing.T) {
	ss := Sections{
		SafetySection{ID: "a"},
		TimelineSection{ID: "b"},
		ChecklistSection{ID: "c"},
		OutcomesSection{ID: "d"},
		CheckpointSection{ID: "e"},
		TeachingStepSection{ID: "f"},
		VocabularySection{ID: "g"},
		ResourceSection{ID: "h"},
		ProseSection{ID: "i"},
		HeadingSection{ID: "j"},
	}

	data, err := json.Marshal(ss)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(ss))
	for i, s := range ss {
		assert.Equal(t, string(s.SectionType()), decoded[i]["type"], "section %d", i)
		assert.Equal(t, s.SectionID(), decoded[i]["id"], "section %d", i)
	}
}

func TestSectionAccessors(t *testing.T) {
	var s Section = TeachingStepSection{ID: "x", StepNumber: 4}
	assert.Equal(t, "x", s.SectionID())
	assert.Equal(t, SectionTypeTeachingStep, s.SectionType())
}
