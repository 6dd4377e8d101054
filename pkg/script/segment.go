package script

import "strings"

// Segments splits content into logical blocks. Boundaries are one or more
// blank lines or a literal "---" separator line. Blocks are trimmed and empty
// blocks are discarded.
func Segments(content string) []string {
	lines := strings.Split(content, "\n")
	segments := make([]string, 0)

	var current []string

	flush := func() {
		segment := strings.TrimSpace(strings.Join(current, "\n"))
		if segment != "" {
			segments = append(segments, segment)
		}

		current = current[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			flush()

			continue
		}

		current = append(current, line)
	}

	flush()

	return segments
}

// StepSegments returns the segments that form the step-by-step navigation
// sequence. Instruction-only segments are metadata for the operator, not a
// distinct conversational beat, so they are excluded here; the full-script
// view still renders them.
func StepSegments(content string, mode ClassifierMode) []string {
	steps := make([]string, 0)

	for _, segment := range Segments(content) {
		if !instructionOnly(segment, mode) {
			steps = append(steps, segment)
		}
	}

	return steps
}

func instructionOnly(segment string, mode ClassifierMode) bool {
	for _, line := range strings.Split(segment, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if ClassifyLine(line, mode) != LineInstruction {
			return false
		}
	}

	return true
}

// RenderedLineKind tags one line of the full-script rendering.
type RenderedLineKind int

const (
	RenderedDialogue RenderedLineKind = iota
	RenderedInstruction
	RenderedSeparator
	RenderedBlank
)

// RenderedLine is one display-ready line of the full-script view, which keeps
// the entire unsegmented content in order.
type RenderedLine struct {
	Kind RenderedLineKind `json:"kind"`
	Text string           `json:"text"`
}

// FullScript renders every line of the content in order, tagging separators,
// blanks, instructions (with markers stripped), and dialogue.
func FullScript(content string, mode ClassifierMode) []RenderedLine {
	lines := strings.Split(content, "\n")
	rendered := make([]RenderedLine, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			rendered = append(rendered, RenderedLine{Kind: RenderedBlank})
		case strings.HasPrefix(trimmed, "---"):
			rendered = append(rendered, RenderedLine{Kind: RenderedSeparator})
		case ClassifyLine(line, mode) == LineInstruction:
			rendered = append(rendered, RenderedLine{Kind: RenderedInstruction, Text: InstructionText(line)})
		default:
			rendered = append(rendered, RenderedLine{Kind: RenderedDialogue, Text: trimmed})
		}
	}

	return rendered
}
