package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "single block",
			content:  "Hi there!\nHow are you?",
			expected: []string{"Hi there!\nHow are you?"},
		},
		{
			name:     "blank line boundary",
			content:  "First beat.\n\nSecond beat.",
			expected: []string{"First beat.", "Second beat."},
		},
		{
			name:     "multiple blank lines collapse",
			content:  "First beat.\n\n\n\nSecond beat.",
			expected: []string{"First beat.", "Second beat."},
		},
		{
			name:     "dash separator boundary",
			content:  "First beat.\n---\nSecond beat.",
			expected: []string{"First beat.", "Second beat."},
		},
		{
			name:     "longer dash runs still separate",
			content:  "First beat.\n-----\nSecond beat.",
			expected: []string{"First beat.", "Second beat."},
		},
		{
			name:     "leading and trailing blanks dropped",
			content:  "\n\nOnly beat.\n\n",
			expected: []string{"Only beat."},
		},
		{
			name:     "empty content",
			content:  "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Segments(tt.content))
		})
	}
}

func TestStepSegments_DropsInstructionOnlyBlocks(t *testing.T) {
	t.Parallel()

	content := "Hi {LeadFirstName}, quick question.\n\n(Wait for their reply)\n\nWould a call work for you?"

	steps := StepSegments(content, ModeStrict)

	require.Len(t, steps, 2)
	assert.Equal(t, "Hi {LeadFirstName}, quick question.", steps[0])
	assert.Equal(t, "Would a call work for you?", steps[1])
}

func TestStepSegments_MixedBlockIsAStep(t *testing.T) {
	t.Parallel()

	content := "(Smile when you say this)\nThanks for picking up!"

	steps := StepSegments(content, ModeStrict)

	require.Len(t, steps, 1)
	assert.Contains(t, steps[0], "Thanks for picking up!")
}

func TestStepSegments_ModeAffectsHeuristicBlocks(t *testing.T) {
	t.Parallel()

	content := "Update the CRM status to Contacted\n\nHello again!"

	// The heuristic classifier reads the first block as instruction-only.
	assert.Len(t, StepSegments(content, ModeHeuristic), 1)
	// The strict classifier keeps it as a dialogue step.
	assert.Len(t, StepSegments(content, ModeStrict), 2)
}

func TestFullScript_KeepsEverythingInOrder(t *testing.T) {
	t.Parallel()

	content := "Hello!\n\n(Pause here)\n---\nGoodbye."

	rendered := FullScript(content, ModeStrict)

	require.Len(t, rendered, 5)
	assert.Equal(t, RenderedLine{Kind: RenderedDialogue, Text: "Hello!"}, rendered[0])
	assert.Equal(t, RenderedLine{Kind: RenderedBlank}, rendered[1])
	assert.Equal(t, RenderedLine{Kind: RenderedInstruction, Text: "Pause here"}, rendered[2])
	assert.Equal(t, RenderedLine{Kind: RenderedSeparator}, rendered[3])
	assert.Equal(t, RenderedLine{Kind: RenderedDialogue, Text: "Goodbye."}, rendered[4])
}
