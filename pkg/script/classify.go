// Package script segments raw script content into render-ready units:
// instruction and dialogue lines, step segments, inline reply menus, and
// placeholder substitutions.
package script

import "strings"

// LineKind distinguishes stage direction from spoken dialogue. Every line
// classifies as exactly one kind.
type LineKind int

const (
	LineDialogue LineKind = iota
	LineInstruction
)

// ClassifierMode selects the instruction-detection heuristic. Script authors
// historically wrapped instructions in brackets; later scripts lean on plain
// prose directives, which ModeHeuristic also catches.
type ClassifierMode int

const (
	// ModeHeuristic is the default: bracket markers plus conditional
	// sentences, CRM directives, and call-flow directives.
	ModeHeuristic ClassifierMode = iota

	// ModeStrict classifies by bracket markers only.
	ModeStrict
)

var crmVerbs = []string{"update", "create", "tag", "assign", "send", "notify"}

var crmNouns = []string{"crm", "status", "task", "callback", "appointment", "lead"}

var flowDirectives = []string{"proceed to", "return to", "end the call"}

// ClassifyLine reports whether a line is instruction text or spoken dialogue.
func ClassifyLine(line string, mode ClassifierMode) LineKind {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		return LineInstruction
	}

	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*") {
		return LineInstruction
	}

	if strings.HasPrefix(trimmed, "//") {
		return LineInstruction
	}

	if mode == ModeStrict {
		return LineDialogue
	}

	lower := strings.ToLower(trimmed)

	// "If X, Y" conditionals read as guidance, not as something to say.
	if strings.HasPrefix(trimmed, "If ") && strings.Contains(trimmed, ",") {
		return LineInstruction
	}

	if containsAny(lower, crmVerbs) && containsAny(lower, crmNouns) {
		return LineInstruction
	}

	if containsAny(lower, flowDirectives) {
		return LineInstruction
	}

	return LineDialogue
}

// IsInstruction is a convenience wrapper over ClassifyLine.
func IsInstruction(line string, mode ClassifierMode) bool {
	return ClassifyLine(line, mode) == LineInstruction
}

// InstructionText strips the wrapping markers from an instruction line. Lines
// detected heuristically carry no markers and come back trimmed only.
func InstructionText(line string) string {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		return strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}

	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*") {
		return strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}

	if strings.HasPrefix(trimmed, "//") {
		return strings.TrimSpace(trimmed[2:])
	}

	return trimmed
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}

	return false
}
