// Package graph holds the in-memory workflow node set and answers the
// structural queries the navigation engine and layout projector read from.
package graph

import (
	"sort"

	"github.com/atechlabs/scriptflow/pkg/models"
)

// UncategorizedWorkflow labels nodes that carry no workflow_name when
// grouping by workflow.
const UncategorizedWorkflow = "Uncategorized"

// Graph is an immutable snapshot of the node set. Rebuild it after every
// editor mutation; readers never observe a half-applied change.
type Graph struct {
	nodes []*models.WorkflowNode
	byID  map[string]*models.WorkflowNode
}

// New builds a graph over the given nodes. Insertion order is preserved for
// stable tie-breaking. Duplicate NodeIDs keep the first occurrence; the
// editor prevents them from being persisted in the first place.
func New(nodes []*models.WorkflowNode) *Graph {
	g := &Graph{
		nodes: nodes,
		byID:  make(map[string]*models.WorkflowNode, len(nodes)),
	}

	for _, node := range nodes {
		if _, ok := g.byID[node.NodeID]; !ok {
			g.byID[node.NodeID] = node
		}
	}

	return g
}

// Len returns the number of nodes in the snapshot.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the underlying node slice in insertion order.
func (g *Graph) Nodes() []*models.WorkflowNode {
	return g.nodes
}

// GetByID returns the node with the given stable id. The second return is
// false for unknown ids; dangling references are not an error here.
func (g *Graph) GetByID(nodeID string) (*models.WorkflowNode, bool) {
	node, ok := g.byID[nodeID]

	return node, ok
}

// ChildrenOf returns the nodes whose parent_id equals parentID, optionally
// restricted to one workflow, sorted ascending by display_order. The sort is
// stable: equal orders keep insertion order.
func (g *Graph) ChildrenOf(parentID, workflowFilter string) []*models.WorkflowNode {
	children := make([]*models.WorkflowNode, 0)

	for _, node := range g.nodes {
		if node.ParentID != parentID {
			continue
		}

		if workflowFilter != "" && node.WorkflowName != workflowFilter {
			continue
		}

		children = append(children, node)
	}

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].DisplayOrder < children[j].DisplayOrder
	})

	return children
}

// Target is one resolved outcome edge. Missing is true when the edge exists
// but its id does not resolve, so the UI can disable the control instead of
// crashing on a dangling reference.
type Target struct {
	Kind    models.OutcomeKind
	NodeID  string
	Node    *models.WorkflowNode
	Missing bool
}

// OutcomeTargets resolves the node's non-empty outcome edges against the
// graph, in kind order. Dangling ids surface as Missing targets.
func (g *Graph) OutcomeTargets(node *models.WorkflowNode) []Target {
	targets := make([]Target, 0, len(models.OutcomeKinds))

	for _, kind := range models.OutcomeKinds {
		id := node.OutcomeTarget(kind)
		if id == "" {
			continue
		}

		resolved, ok := g.byID[id]
		targets = append(targets, Target{
			Kind:    kind,
			NodeID:  id,
			Node:    resolved,
			Missing: !ok,
		})
	}

	return targets
}

// GroupByWorkflow maps each workflow_name to its member nodes in insertion
// order. Nodes without a workflow_name group under UncategorizedWorkflow.
func (g *Graph) GroupByWorkflow() map[string][]*models.WorkflowNode {
	groups := make(map[string][]*models.WorkflowNode)

	for _, node := range g.nodes {
		name := node.WorkflowName
		if name == "" {
			name = UncategorizedWorkflow
		}

		groups[name] = append(groups[name], node)
	}

	return groups
}

// WorkflowNames returns the sorted distinct workflow names present in the
// snapshot, including the Uncategorized bucket when applicable.
func (g *Graph) WorkflowNames() []string {
	groups := g.GroupByWorkflow()
	names := make([]string, 0, len(groups))

	for name := range groups {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
