package script

import "strings"

// Span is one run of a rendered line. Highlighted spans mark substrings that
// were auto-filled from context so the UI can flag them; the tooltip names
// the source field.
type Span struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight"`
	Tooltip   string `json:"tooltip,omitempty"`
}

// ResolvedValue pairs a substituted value with the tooltip describing where
// it came from.
type ResolvedValue struct {
	Value   string
	Tooltip string
}

// ResolvedValues lists the dynamic values a context resolves to, for
// re-scanning rendered lines. Optional fields without a value contribute
// nothing.
func (c Context) ResolvedValues() []ResolvedValue {
	values := []ResolvedValue{
		{Value: c.LeadName(), Tooltip: "Lead name"},
		{Value: c.RepName(), Tooltip: "Rep name"},
	}

	if c.BusinessName != "" {
		values = append(values, ResolvedValue{Value: c.BusinessName, Tooltip: "Business name"})
	}

	if c.LeadMagnetName != "" {
		values = append(values, ResolvedValue{Value: c.LeadMagnetName, Tooltip: "Lead magnet"})
	}

	return values
}

// HighlightLine re-scans a substituted line for exact occurrences of the
// resolved values. Matching is first-occurrence-forward per pattern,
// case-sensitive and non-overlapping: the scan walks left to right and the
// first pattern matching at a position wins.
func HighlightLine(line string, values []ResolvedValue) []Span {
	spans := make([]Span, 0, 1)

	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(line); {
		matched := false

		for _, value := range values {
			if value.Value == "" {
				continue
			}

			if strings.HasPrefix(line[i:], value.Value) {
				flushPlain()
				spans = append(spans, Span{Text: value.Value, Highlight: true, Tooltip: value.Tooltip})
				i += len(value.Value)
				matched = true

				break
			}
		}

		if !matched {
			plain.WriteByte(line[i])
			i++
		}
	}

	flushPlain()

	return spans
}
