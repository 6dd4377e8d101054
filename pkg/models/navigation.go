package models

// NavigationState is the session-scoped walkthrough position. History holds
// full node snapshots, not ids, so Back works without re-querying the store.
// State is always owned by one session and passed explicitly; it is never
// package-level.
type NavigationState struct {
	CurrentNodeID    string          `json:"current_node_id"`
	History          []*WorkflowNode `json:"history"`
	SelectedWorkflow string          `json:"selected_workflow,omitempty"`
}

// NewNavigationState returns a state positioned at the root sentinel with an
// empty history.
func NewNavigationState() *NavigationState {
	return &NavigationState{CurrentNodeID: RootNodeID}
}

// AtRoot reports whether the walkthrough has not yet selected a real node.
func (s *NavigationState) AtRoot() bool {
	return s.CurrentNodeID == RootNodeID
}

// Depth returns the number of history entries behind the current node.
func (s *NavigationState) Depth() int {
	return len(s.History)
}
