package script

import (
	"regexp"
	"strings"

	"github.com/atechlabs/scriptflow/pkg/models"
)

// Inline-reply region markers embedded in script content.
const (
	inlineRepliesStart = "[INLINE_REPLIES]"
	inlineRepliesEnd   = "[/INLINE_REPLIES]"
)

// Reply-sentiment glyphs. The glyph leads each reply line; the label after it
// binds the reply to an outcome edge.
const (
	GlyphYes    = "👍"
	GlyphNo     = "👎"
	GlyphUnsure = "🤷"
)

// replyLine matches `GLYPH LABEL: "TEXT"`.
var replyLine = regexp.MustCompile(`^(👍|👎|🤷)\s+([A-Za-z][A-Za-z-]*)\s*:\s*"(.*)"\s*$`)

// InlineReply is one canned response option from a script-embedded reply
// menu. When present, inline replies are the exclusive navigation affordance
// for their node.
type InlineReply struct {
	Glyph string `json:"glyph"`
	Label string `json:"label"` // normalized lowercase
	Text  string `json:"text"`
}

// Outcome maps the reply label to the outcome edge it navigates:
// yes → on_yes, no → on_no, unsure → on_no_response. Unknown labels stay
// unbound and render as plain text options.
func (r InlineReply) Outcome() (models.OutcomeKind, bool) {
	switch r.Label {
	case "yes":
		return models.OutcomeYes, true
	case "no":
		return models.OutcomeNo, true
	case "unsure":
		return models.OutcomeNoResponse, true
	}

	return "", false
}

// ExtractInlineReplies removes the [INLINE_REPLIES] region from the content
// and parses its lines. Lines not matching the reply pattern are dropped.
// Content without a complete region comes back unchanged with nil replies,
// which makes the extraction idempotent on its own output.
func ExtractInlineReplies(content string) (string, []InlineReply) {
	start := strings.Index(content, inlineRepliesStart)
	if start < 0 {
		return content, nil
	}

	end := strings.Index(content[start:], inlineRepliesEnd)
	if end < 0 {
		return content, nil
	}

	end += start

	region := content[start+len(inlineRepliesStart) : end]
	stripped := content[:start] + content[end+len(inlineRepliesEnd):]
	stripped = strings.TrimRight(stripped, " \t\n")

	replies := make([]InlineReply, 0)

	for _, line := range strings.Split(region, "\n") {
		match := replyLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		replies = append(replies, InlineReply{
			Glyph: match[1],
			Label: strings.ToLower(match[2]),
			Text:  match[3],
		})
	}

	if len(replies) == 0 {
		return stripped, nil
	}

	return stripped, replies
}
