// Package services implements the graph editor and placeholder-context
// business rules over the persistence layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atechlabs/scriptflow/pkg/graph"
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Editor maintains the workflow graph: create, partial update, delete,
// workflow cascade delete, and bulk import.
type Editor struct {
	persistence persistence.Persistence
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewEditor creates a new graph editor service.
func NewEditor(p persistence.Persistence, logger *slog.Logger) *Editor {
	return &Editor{
		persistence: p,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// HealthCheck checks the health of the persistence layer.
func (e *Editor) HealthCheck(ctx context.Context) (string, bool) {
	if e.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := e.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListNodes retrieves nodes ordered by display_order, optionally filtered.
func (e *Editor) ListNodes(ctx context.Context, opts persistence.ListNodesOptions) ([]*models.WorkflowNode, error) {
	nodes, err := e.persistence.NodeRepository().List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	return nodes, nil
}

// FetchByNodeID retrieves a node by its stable id.
func (e *Editor) FetchByNodeID(ctx context.Context, nodeID string) (*models.WorkflowNode, error) {
	if nodeID == "" {
		return nil, ErrEmptyNodeID
	}

	return e.persistence.NodeRepository().GetByNodeID(ctx, nodeID)
}

// Graph loads the full node set into an immutable snapshot for traversal.
func (e *Editor) Graph(ctx context.Context) (*graph.Graph, error) {
	nodes, err := e.ListNodes(ctx, persistence.ListNodesOptions{})
	if err != nil {
		return nil, err
	}

	return graph.New(nodes), nil
}

// Create validates and persists a new node. Missing required fields abort
// with a validation error and no partial write; a taken node_id aborts with
// ErrNodeAlreadyExists.
func (e *Editor) Create(ctx context.Context, node *models.WorkflowNode) (*models.WorkflowNode, error) {
	if node == nil {
		return nil, ErrNodeNil
	}

	if err := e.validateNode(node); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	node.ID = uuid.New().String()
	node.CreatedAt = now
	node.UpdatedAt = now

	if err := e.persistence.NodeRepository().Create(ctx, node); err != nil {
		if persistence.IsNodeAlreadyExists(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create node: %w", err)
	}

	e.logger.InfoContext(ctx, "Node created", "node_id", node.NodeID, "workflow", node.WorkflowName)

	return node, nil
}

// NodeUpdate carries the mutable fields for a partial update. Nil pointers
// leave the stored value untouched; node_id itself is immutable once created.
type NodeUpdate struct {
	ParentID            *string       `json:"parent_id,omitempty"`
	Stage               *models.Stage `json:"stage,omitempty"`
	ScenarioTitle       *string       `json:"scenario_title,omitempty"`
	ScenarioDescription *string       `json:"scenario_description,omitempty"`
	ScriptName          *string       `json:"script_name,omitempty"`
	ScriptSection       *string       `json:"script_section,omitempty"`
	ScriptContent       *string       `json:"script_content,omitempty"`
	OnYesNextNode       *string       `json:"on_yes_next_node,omitempty"`
	OnNoNextNode        *string       `json:"on_no_next_node,omitempty"`
	OnNoResponseNext    *string       `json:"on_no_response_next_node,omitempty"`
	CRMActions          *string       `json:"crm_actions,omitempty"`
	WorkflowName        *string       `json:"workflow_name,omitempty"`
	DisplayOrder        *int          `json:"display_order,omitempty"`
}

// Update merges the provided fields into the stored node.
func (e *Editor) Update(ctx context.Context, nodeID string, update NodeUpdate) (*models.WorkflowNode, error) {
	existing, err := e.persistence.NodeRepository().GetByNodeID(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	applyUpdate(existing, update)

	if err := e.validateNode(existing); err != nil {
		return nil, err
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := e.persistence.NodeRepository().Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update node: %w", err)
	}

	e.logger.InfoContext(ctx, "Node updated", "node_id", nodeID)

	return existing, nil
}

// Delete removes a single node. Outcome edges in other nodes that pointed at
// it are left dangling; traversal tolerates them.
func (e *Editor) Delete(ctx context.Context, nodeID string) error {
	if nodeID == "" {
		return ErrEmptyNodeID
	}

	if err := e.persistence.NodeRepository().Delete(ctx, nodeID); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Node deleted", "node_id", nodeID)

	return nil
}

// DeleteWorkflow deletes every node sharing the workflow name with one
// delete per member, sequentially. The sequence is not a transaction: a
// failure partway through leaves the already-deleted nodes gone and returns
// a CascadeError naming how far it got.
func (e *Editor) DeleteWorkflow(ctx context.Context, workflowName string) (int, error) {
	if workflowName == "" {
		return 0, ErrEmptyWorkflow
	}

	members, err := e.ListNodes(ctx, persistence.ListNodesOptions{WorkflowName: workflowName})
	if err != nil {
		return 0, err
	}

	if len(members) == 0 {
		return 0, ErrWorkflowNotFound
	}

	for i, member := range members {
		if err := e.persistence.NodeRepository().Delete(ctx, member.NodeID); err != nil {
			e.logger.ErrorContext(ctx, "Workflow cascade delete aborted",
				"workflow", workflowName, "deleted", i, "remaining", len(members)-i)

			return i, &CascadeError{
				WorkflowName: workflowName,
				Deleted:      i,
				Remaining:    len(members) - i,
				Err:          err,
			}
		}
	}

	e.logger.InfoContext(ctx, "Workflow deleted", "workflow", workflowName, "nodes", len(members))

	return len(members), nil
}

// BulkImport inserts a batch of nodes in one call, all-or-nothing: schema
// and field validation, intra-batch duplicate detection, then a single batch
// insert that conflicts as a whole if any node_id is taken. Callers are
// expected to import into an empty graph.
func (e *Editor) BulkImport(ctx context.Context, nodes []*models.WorkflowNode) ([]*models.WorkflowNode, error) {
	if len(nodes) == 0 {
		return nil, ErrImportEmpty
	}

	seen := make(map[string]bool, len(nodes))

	for _, node := range nodes {
		if err := e.validateNode(node); err != nil {
			return nil, err
		}

		if seen[node.NodeID] {
			return nil, NewValidationError("BulkImport", "duplicate node_id "+node.NodeID, ErrImportDuplicate)
		}

		seen[node.NodeID] = true
	}

	now := time.Now().UTC()

	for _, node := range nodes {
		node.ID = uuid.New().String()
		node.CreatedAt = now
		node.UpdatedAt = now
	}

	if err := e.persistence.NodeRepository().BulkCreate(ctx, nodes); err != nil {
		if persistence.IsNodeAlreadyExists(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to import nodes: %w", err)
	}

	e.logger.InfoContext(ctx, "Nodes imported", "count", len(nodes))

	return nodes, nil
}

func (e *Editor) validateNode(node *models.WorkflowNode) error {
	if err := e.validate.Struct(node); err != nil {
		return NewValidationError("validateNode", err.Error(), ErrInvalidRequest)
	}

	if !models.ValidStage(node.Stage) {
		return NewValidationError("validateNode", "unknown stage "+string(node.Stage), ErrInvalidStage)
	}

	return nil
}

func applyUpdate(node *models.WorkflowNode, update NodeUpdate) {
	if update.ParentID != nil {
		node.ParentID = *update.ParentID
	}

	if update.Stage != nil {
		node.Stage = *update.Stage
	}

	if update.ScenarioTitle != nil {
		node.ScenarioTitle = *update.ScenarioTitle
	}

	if update.ScenarioDescription != nil {
		node.ScenarioDescription = *update.ScenarioDescription
	}

	if update.ScriptName != nil {
		node.ScriptName = *update.ScriptName
	}

	if update.ScriptSection != nil {
		node.ScriptSection = *update.ScriptSection
	}

	if update.ScriptContent != nil {
		node.ScriptContent = *update.ScriptContent
	}

	if update.OnYesNextNode != nil {
		node.OnYesNextNode = *update.OnYesNextNode
	}

	if update.OnNoNextNode != nil {
		node.OnNoNextNode = *update.OnNoNextNode
	}

	if update.OnNoResponseNext != nil {
		node.OnNoResponseNext = *update.OnNoResponseNext
	}

	if update.CRMActions != nil {
		node.CRMActions = *update.CRMActions
	}

	if update.WorkflowName != nil {
		node.WorkflowName = *update.WorkflowName
	}

	if update.DisplayOrder != nil {
		node.DisplayOrder = *update.DisplayOrder
	}
}
