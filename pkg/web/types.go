// Package web provides HTTP request and response types for the script-flow API.
package web

import (
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/navigation"
	"github.com/atechlabs/scriptflow/pkg/script"
)

// CreateNodeRequest represents the request body for creating a new workflow node.
type CreateNodeRequest struct {
	NodeID              string `json:"node_id"                            validate:"required"`
	ParentID            string `json:"parent_id,omitempty"`
	Stage               string `json:"stage"                              validate:"required"`
	ScenarioTitle       string `json:"scenario_title"                     validate:"required"`
	ScenarioDescription string `json:"scenario_description"               validate:"required"`
	ScriptName          string `json:"script_name"                        validate:"required"`
	ScriptSection       string `json:"script_section"                     validate:"required"`
	ScriptContent       string `json:"script_content,omitempty"`
	OnYesNextNode       string `json:"on_yes_next_node,omitempty"`
	OnNoNextNode        string `json:"on_no_next_node,omitempty"`
	OnNoResponseNext    string `json:"on_no_response_next_node,omitempty"`
	CRMActions          string `json:"crm_actions"                        validate:"required"`
	WorkflowName        string `json:"workflow_name,omitempty"`
	DisplayOrder        int    `json:"display_order"`
}

// ToModel converts the request into a workflow node. The service layer
// assigns the surrogate id and timestamps.
func (r CreateNodeRequest) ToModel() *models.WorkflowNode {
	return &models.WorkflowNode{
		NodeID:              r.NodeID,
		ParentID:            r.ParentID,
		Stage:               models.Stage(r.Stage),
		ScenarioTitle:       r.ScenarioTitle,
		ScenarioDescription: r.ScenarioDescription,
		ScriptName:          r.ScriptName,
		ScriptSection:       r.ScriptSection,
		ScriptContent:       r.ScriptContent,
		OnYesNextNode:       r.OnYesNextNode,
		OnNoNextNode:        r.OnNoNextNode,
		OnNoResponseNext:    r.OnNoResponseNext,
		CRMActions:          r.CRMActions,
		WorkflowName:        r.WorkflowName,
		DisplayOrder:        r.DisplayOrder,
	}
}

// WorkflowSummary is one entry of the workflow grouping listing.
type WorkflowSummary struct {
	Name      string `json:"name"`
	NodeCount int    `json:"node_count"`
}

// SelectRootRequest starts a walkthrough session at a node, optionally
// scoping child queries to one workflow.
type SelectRootRequest struct {
	NodeID       string `json:"node_id"       validate:"required"`
	WorkflowName string `json:"workflow_name,omitempty"`
}

// NavigateRequest moves a session to a target node.
type NavigateRequest struct {
	TargetNodeID string `json:"target_node_id" validate:"required"`
}

// JumpRequest rewinds a session to an earlier breadcrumb.
type JumpRequest struct {
	NodeID string `json:"node_id" validate:"required"`
}

// SessionResponse is the full walkthrough view for one session: where the
// session is, how it got there, and what it can do next.
type SessionResponse struct {
	SessionID string                   `json:"session_id"`
	Phase     navigation.Phase         `json:"phase"`
	State     *models.NavigationState  `json:"state"`
	Current   *models.WorkflowNode     `json:"current,omitempty"`
	NextSteps *navigation.NextSteps    `json:"next_steps,omitempty"`
	Roots     []*models.WorkflowNode   `json:"roots,omitempty"`
}

// ScriptLine is one substituted line of a step, split into highlight spans.
type ScriptLine struct {
	Instruction bool          `json:"instruction"`
	Spans       []script.Span `json:"spans"`
}

// ScriptStep is one conversational beat of the step-by-step view.
type ScriptStep struct {
	Lines []ScriptLine `json:"lines"`
}

// ScriptResponse is the parsed script for a session's current node.
type ScriptResponse struct {
	NodeID        string                  `json:"node_id"`
	ScriptName    string                  `json:"script_name"`
	ScriptSection string                  `json:"script_section"`
	Steps         []ScriptStep            `json:"steps"`
	FullScript    []script.RenderedLine   `json:"full_script"`
	InlineReplies []navigation.ReplyOption `json:"inline_replies,omitempty"`
}
