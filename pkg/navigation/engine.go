package navigation

import (
	"github.com/atechlabs/scriptflow/pkg/graph"
	"github.com/atechlabs/scriptflow/pkg/models"
)

// Phase is the coarse state of a walkthrough.
type Phase string

const (
	PhaseAtRoot   Phase = "at_root"
	PhaseAtNode   Phase = "at_node"
	PhaseTerminal Phase = "terminal"
)

// Engine walks the workflow graph. It is synchronous and user-paced: no
// background work, no cancellation. All operations take the session's
// NavigationState explicitly and mutate it in place.
type Engine struct {
	graph *graph.Graph
}

// NewEngine creates an engine over a graph snapshot.
func NewEngine(g *graph.Graph) *Engine {
	return &Engine{graph: g}
}

// Graph returns the underlying snapshot.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Current returns the node the state points at, or nil at the root sentinel
// or when the current id no longer resolves.
func (e *Engine) Current(state *models.NavigationState) *models.WorkflowNode {
	node, ok := e.graph.GetByID(state.CurrentNodeID)
	if !ok {
		return nil
	}

	return node
}

// Phase classifies the state: at the root sentinel, at a node, or at a
// terminal node that ends the walkthrough.
func (e *Engine) Phase(state *models.NavigationState) Phase {
	if state.AtRoot() {
		return PhaseAtRoot
	}

	node := e.Current(state)
	if node == nil {
		return PhaseAtNode
	}

	steps := ResolveNextSteps(e.graph, node, state.SelectedWorkflow)
	if steps.Terminal {
		return PhaseTerminal
	}

	return PhaseAtNode
}

// SelectRoot starts a walkthrough at the given node, clearing any history.
// Unresolvable ids are a no-op.
func (e *Engine) SelectRoot(state *models.NavigationState, nodeID string) bool {
	if _, ok := e.graph.GetByID(nodeID); !ok {
		return false
	}

	state.CurrentNodeID = nodeID
	state.History = nil

	return true
}

// Navigate moves to the target node, pushing a snapshot of the node being
// left onto history. Unresolvable targets are a silent no-op: callers are
// expected to check resolution before offering the control.
func (e *Engine) Navigate(state *models.NavigationState, targetNodeID string) bool {
	if _, ok := e.graph.GetByID(targetNodeID); !ok {
		return false
	}

	if current := e.Current(state); current != nil {
		snapshot := *current
		state.History = append(state.History, &snapshot)
	}

	state.CurrentNodeID = targetNodeID

	return true
}

// SelectChild navigates via a child preview card. The transition semantics
// are identical to Navigate; only the UI origin differs.
func (e *Engine) SelectChild(state *models.NavigationState, childNodeID string) bool {
	return e.Navigate(state, childNodeID)
}

// Back pops the most recent history snapshot and makes it current. An empty
// history is a no-op.
func (e *Engine) Back(state *models.NavigationState) bool {
	if len(state.History) == 0 {
		return false
	}

	previous := state.History[len(state.History)-1]
	state.History = state.History[:len(state.History)-1]
	state.CurrentNodeID = previous.NodeID

	return true
}

// Reset returns to the root sentinel, clearing history and the workflow
// filter.
func (e *Engine) Reset(state *models.NavigationState) {
	state.CurrentNodeID = models.RootNodeID
	state.History = nil
	state.SelectedWorkflow = ""
}

// JumpToBreadcrumb makes an earlier history entry current, truncating history
// to the entries before it. Ids not present in history are a no-op.
func (e *Engine) JumpToBreadcrumb(state *models.NavigationState, nodeID string) bool {
	for i, entry := range state.History {
		if entry.NodeID == nodeID {
			state.History = state.History[:i]
			state.CurrentNodeID = nodeID

			return true
		}
	}

	return false
}
