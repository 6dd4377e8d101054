// Package layout projects the workflow graph into positioned nodes and typed
// edges for an external diagram renderer. The projection is pure and
// deterministic: same node list in, same positions out.
package layout

import "github.com/atechlabs/scriptflow/pkg/models"

// Spacing constants for the stage-column layout.
const (
	NodeWidth         = 280
	NodeHeight        = 140
	HorizontalSpacing = 350
	VerticalSpacing   = 200
)

// Node is one positioned diagram node.
type Node struct {
	ID    string               `json:"id"`
	X     int                  `json:"x"`
	Y     int                  `json:"y"`
	Stage models.Stage         `json:"stage"`
	Node  *models.WorkflowNode `json:"node"`
}

// Edge is one outcome pointer, tagged with its kind for downstream
// color/label mapping.
type Edge struct {
	ID     string             `json:"id"`
	Source string             `json:"source"`
	Target string             `json:"target"`
	Kind   models.OutcomeKind `json:"kind"`
}

// Projection is the renderable node/edge position model.
type Projection struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Project lays nodes out in stage columns: x is the stage's index in the
// canonical order times the horizontal spacing; y centers each node within
// its stage column by its index among same-stage siblings. Edges are emitted
// per non-empty outcome pointer, including dangling ones; the renderer
// decides how to draw an edge whose target is absent.
func Project(nodes []*models.WorkflowNode) Projection {
	byStage := make(map[models.Stage][]*models.WorkflowNode)
	for _, node := range nodes {
		byStage[node.Stage] = append(byStage[node.Stage], node)
	}

	projection := Projection{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0),
	}

	for stageIndex, stage := range models.StageOrder {
		stageNodes := byStage[stage]

		for nodeIndex, node := range stageNodes {
			// Center the column: offsets are symmetric around zero.
			yOffset := (2*nodeIndex - (len(stageNodes) - 1)) * VerticalSpacing / 2

			projection.Nodes = append(projection.Nodes, Node{
				ID:    node.NodeID,
				X:     stageIndex * HorizontalSpacing,
				Y:     yOffset,
				Stage: node.Stage,
				Node:  node,
			})

			for _, kind := range models.OutcomeKinds {
				target := node.OutcomeTarget(kind)
				if target == "" {
					continue
				}

				projection.Edges = append(projection.Edges, Edge{
					ID:     node.NodeID + "-" + string(kind) + "-" + target,
					Source: node.NodeID,
					Target: target,
					Kind:   kind,
				})
			}
		}
	}

	return projection
}
