// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/google/uuid"
)

// CreateTestNode creates a test WorkflowNode with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.WorkflowNode)) *models.WorkflowNode {
	now := time.Now().UTC()

	node := &models.WorkflowNode{
		ID:                  uuid.New().String(),
		CreatedAt:           now,
		UpdatedAt:           now,
		NodeID:              "TEST_NODE",
		Stage:               models.StageFirstContact,
		ScenarioTitle:       "Test Scenario",
		ScenarioDescription: "A scenario for testing",
		ScriptName:          "Test Script",
		ScriptSection:       "Opening",
		ScriptContent:       "Hi {LeadFirstName}, this is {RepName}.",
		CRMActions:          "Update CRM status to Contacted",
		WorkflowName:        "TEST_WORKFLOW",
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithNodeID sets the stable graph identifier.
func WithNodeID(nodeID string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.NodeID = nodeID
	}
}

// WithParent sets the parent grouping id.
func WithParent(parentID string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.ParentID = parentID
	}
}

// WithStage sets the funnel stage.
func WithStage(stage models.Stage) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Stage = stage
	}
}

// WithWorkflow sets the workflow grouping name.
func WithWorkflow(name string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.WorkflowName = name
	}
}

// WithScript sets the script content.
func WithScript(content string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.ScriptContent = content
	}
}

// WithOutcomes sets the three outcome-edge targets. Empty strings leave the
// edge absent.
func WithOutcomes(yes, no, noResponse string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.OnYesNextNode = yes
		n.OnNoNextNode = no
		n.OnNoResponseNext = noResponse
	}
}

// WithDisplayOrder sets the sibling ordering rank.
func WithDisplayOrder(order int) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.DisplayOrder = order
	}
}

// WithScenario sets the scenario title and description.
func WithScenario(title, description string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.ScenarioTitle = title
		n.ScenarioDescription = description
	}
}

// CreateTestWorkflowNodes creates a small three-node workflow: a root whose
// yes edge points at a child that is also parent-grouped under it, and a
// terminal outcome node.
func CreateTestWorkflowNodes() []*models.WorkflowNode {
	root := CreateTestNode(
		WithNodeID("TEST_ROOT"),
		WithStage(models.StageSource),
		WithOutcomes("TEST_CHILD", "", ""),
	)
	child := CreateTestNode(
		WithNodeID("TEST_CHILD"),
		WithParent("TEST_ROOT"),
		WithOutcomes("TEST_DONE", "", ""),
	)
	done := CreateTestNode(
		WithNodeID("TEST_DONE"),
		WithStage(models.StageOutcome),
		WithScenario("Deal Closed", "The lead agreed and the workflow ends"),
	)

	return []*models.WorkflowNode{root, child, done}
}
