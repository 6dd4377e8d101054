// Package models defines the core domain models for the sales-script workflow graph.
package models

import "time"

// Stage classifies a node within the sales funnel. It is descriptive only and
// does not constrain which nodes an outcome edge may target.
type Stage string

const (
	StageSource       Stage = "Source"
	StageFirstContact Stage = "First Contact"
	StageAppointment  Stage = "Appointment"
	StagePreCall      Stage = "Pre-Call"
	StageClose        Stage = "Close"
	StageObjection    Stage = "Objection"
	StageFollowUp     Stage = "Follow-Up"
	StageOutcome      Stage = "Outcome"
)

// StageOrder is the canonical left-to-right stage sequence used for layout
// and stage-column grouping.
var StageOrder = []Stage{
	StageSource,
	StageFirstContact,
	StageAppointment,
	StagePreCall,
	StageClose,
	StageObjection,
	StageFollowUp,
	StageOutcome,
}

// ValidStage reports whether s is one of the eight known stages.
func ValidStage(s Stage) bool {
	for _, stage := range StageOrder {
		if s == stage {
			return true
		}
	}

	return false
}

// OutcomeKind is the closed set of outcome-edge labels leaving a node.
type OutcomeKind string

const (
	OutcomeYes        OutcomeKind = "yes"
	OutcomeNo         OutcomeKind = "no"
	OutcomeNoResponse OutcomeKind = "no_response"
)

// OutcomeKinds lists every edge kind in presentation order.
var OutcomeKinds = []OutcomeKind{OutcomeYes, OutcomeNo, OutcomeNoResponse}

// RootNodeID is the sentinel identifier presented before a walkthrough has
// selected a real starting node.
const RootNodeID = "START"

// WorkflowNode is one scripted sales-interaction step. NodeID is the stable
// graph identifier; the store-internal ID is a separate surrogate key.
type WorkflowNode struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NodeID              string `json:"node_id"              validate:"required"`
	ParentID            string `json:"parent_id,omitempty"`
	Stage               Stage  `json:"stage"                validate:"required"`
	ScenarioTitle       string `json:"scenario_title"       validate:"required"`
	ScenarioDescription string `json:"scenario_description" validate:"required"`
	ScriptName          string `json:"script_name"          validate:"required"`
	ScriptSection       string `json:"script_section"       validate:"required"`
	ScriptContent       string `json:"script_content,omitempty"`
	OnYesNextNode       string `json:"on_yes_next_node,omitempty"`
	OnNoNextNode        string `json:"on_no_next_node,omitempty"`
	OnNoResponseNext    string `json:"on_no_response_next_node,omitempty"`
	CRMActions          string `json:"crm_actions"          validate:"required"`
	WorkflowName        string `json:"workflow_name,omitempty"`
	DisplayOrder        int    `json:"display_order"`
}

// OutcomeTarget returns the edge target for the given kind, or "" when the
// edge is absent.
func (n *WorkflowNode) OutcomeTarget(kind OutcomeKind) string {
	switch kind {
	case OutcomeYes:
		return n.OnYesNextNode
	case OutcomeNo:
		return n.OnNoNextNode
	case OutcomeNoResponse:
		return n.OnNoResponseNext
	}

	return ""
}

// OutcomeTargets returns the non-empty outcome-edge targets in kind order.
func (n *WorkflowNode) OutcomeTargets() []string {
	targets := make([]string, 0, len(OutcomeKinds))

	for _, kind := range OutcomeKinds {
		if target := n.OutcomeTarget(kind); target != "" {
			targets = append(targets, target)
		}
	}

	return targets
}

// IsTerminal reports whether all three outcome edges are absent. A terminal
// node with no parent-grouped children ends the walkthrough.
func (n *WorkflowNode) IsTerminal() bool {
	return n.OnYesNextNode == "" && n.OnNoNextNode == "" && n.OnNoResponseNext == ""
}
