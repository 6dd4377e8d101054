package layout

import (
	"testing"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_StageColumns(t *testing.T) {
	t.Parallel()

	source := testutil.CreateTestNode(
		testutil.WithNodeID("A"),
		testutil.WithStage(models.StageSource),
	)
	outcome := testutil.CreateTestNode(
		testutil.WithNodeID("B"),
		testutil.WithStage(models.StageOutcome),
	)

	projection := Project([]*models.WorkflowNode{source, outcome})

	require.Len(t, projection.Nodes, 2)

	assert.Equal(t, 0, projection.Nodes[0].X)
	assert.Equal(t, "A", projection.Nodes[0].ID)

	// Outcome is the last of the eight stage columns.
	assert.Equal(t, 7*HorizontalSpacing, projection.Nodes[1].X)
	assert.Equal(t, "B", projection.Nodes[1].ID)
}

func TestProject_CentersColumnVertically(t *testing.T) {
	t.Parallel()

	nodes := []*models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithNodeID("A"), testutil.WithStage(models.StageClose)),
		testutil.CreateTestNode(testutil.WithNodeID("B"), testutil.WithStage(models.StageClose)),
		testutil.CreateTestNode(testutil.WithNodeID("C"), testutil.WithStage(models.StageClose)),
	}

	projection := Project(nodes)

	require.Len(t, projection.Nodes, 3)
	assert.Equal(t, -VerticalSpacing, projection.Nodes[0].Y)
	assert.Equal(t, 0, projection.Nodes[1].Y)
	assert.Equal(t, VerticalSpacing, projection.Nodes[2].Y)
}

func TestProject_TwoNodesStraddleCenter(t *testing.T) {
	t.Parallel()

	nodes := []*models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithNodeID("A"), testutil.WithStage(models.StageClose)),
		testutil.CreateTestNode(testutil.WithNodeID("B"), testutil.WithStage(models.StageClose)),
	}

	projection := Project(nodes)

	require.Len(t, projection.Nodes, 2)
	assert.Equal(t, -VerticalSpacing/2, projection.Nodes[0].Y)
	assert.Equal(t, VerticalSpacing/2, projection.Nodes[1].Y)
}

func TestProject_EdgesPerOutcome(t *testing.T) {
	t.Parallel()

	node := testutil.CreateTestNode(
		testutil.WithNodeID("A"),
		testutil.WithOutcomes("B", "", "DANGLING"),
	)
	target := testutil.CreateTestNode(
		testutil.WithNodeID("B"),
		testutil.WithStage(models.StageOutcome),
	)

	projection := Project([]*models.WorkflowNode{node, target})

	require.Len(t, projection.Edges, 2)

	assert.Equal(t, Edge{
		ID:     "A-yes-B",
		Source: "A",
		Target: "B",
		Kind:   models.OutcomeYes,
	}, projection.Edges[0])

	// Dangling targets still get an edge; the renderer decides what to draw.
	assert.Equal(t, Edge{
		ID:     "A-no_response-DANGLING",
		Source: "A",
		Target: "DANGLING",
		Kind:   models.OutcomeNoResponse,
	}, projection.Edges[1])
}

func TestProject_Deterministic(t *testing.T) {
	t.Parallel()

	nodes := testutil.CreateTestWorkflowNodes()

	first := Project(nodes)
	second := Project(nodes)

	assert.Equal(t, first, second)
}

func TestProject_Empty(t *testing.T) {
	t.Parallel()

	projection := Project(nil)

	assert.Empty(t, projection.Nodes)
	assert.Empty(t, projection.Edges)
}
