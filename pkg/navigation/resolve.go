// Package navigation implements the walkthrough state machine and the
// next-step resolution policy over the workflow graph.
package navigation

import (
	"github.com/atechlabs/scriptflow/pkg/graph"
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/script"
)

// ReplyOption is an inline reply resolved against the graph. Target is empty
// when the reply's label binds no outcome edge on the node; Missing is true
// when the bound edge dangles.
type ReplyOption struct {
	Reply   script.InlineReply `json:"reply"`
	Target  string             `json:"target,omitempty"`
	Missing bool               `json:"missing,omitempty"`
}

// NextSteps is the resolved navigation footer for one node: which outcome
// edges render as action buttons, which children render as preview cards,
// and whether inline replies replace both.
type NextSteps struct {
	Buttons           []graph.Target          `json:"buttons,omitempty"`
	Cards             []*models.WorkflowNode  `json:"cards,omitempty"`
	InlineReplies     []ReplyOption           `json:"inline_replies,omitempty"`
	ChildrenMatchNext bool                    `json:"children_match_next"`
	Terminal          bool                    `json:"terminal"`
}

// ResolveNextSteps applies the next-step policy for the current node.
//
// The graph mixes two addressing schemes: strict outcome edges and the
// looser parent grouping. Action buttons are suppressed exactly when every
// outcome edge already has a same-parent child card, so the same destination
// is never presented twice; buttons and cards coexist when an edge points
// outside the child set. Inline replies, when present in the script, are the
// exclusive affordance.
func ResolveNextSteps(g *graph.Graph, node *models.WorkflowNode, workflowFilter string) NextSteps {
	children := g.ChildrenOf(node.NodeID, workflowFilter)
	nextIDs := node.OutcomeTargets()

	childIDs := make(map[string]bool, len(children))
	for _, child := range children {
		childIDs[child.NodeID] = true
	}

	childrenMatch := len(nextIDs) > 0

	for _, id := range nextIDs {
		if !childIDs[id] {
			childrenMatch = false

			break
		}
	}

	steps := NextSteps{
		ChildrenMatchNext: childrenMatch,
		Terminal:          node.IsTerminal() && len(children) == 0,
	}

	if _, replies := script.ExtractInlineReplies(node.ScriptContent); replies != nil {
		steps.InlineReplies = resolveReplies(g, node, replies)

		return steps
	}

	if !childrenMatch && len(nextIDs) > 0 {
		steps.Buttons = g.OutcomeTargets(node)
	}

	if len(children) > 0 {
		steps.Cards = children
	}

	return steps
}

func resolveReplies(g *graph.Graph, node *models.WorkflowNode, replies []script.InlineReply) []ReplyOption {
	options := make([]ReplyOption, 0, len(replies))

	for _, reply := range replies {
		option := ReplyOption{Reply: reply}

		if kind, ok := reply.Outcome(); ok {
			if target := node.OutcomeTarget(kind); target != "" {
				option.Target = target

				if _, resolved := g.GetByID(target); !resolved {
					option.Missing = true
				}
			}
		}

		options = append(options, option)
	}

	return options
}
