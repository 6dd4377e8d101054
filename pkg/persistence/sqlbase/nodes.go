package sqlbase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
)

const nodeColumns = `id, node_id, parent_id, stage, scenario_title, scenario_description,
	script_name, script_section, script_content, on_yes_next_node, on_no_next_node,
	on_no_response_next_node, crm_actions, workflow_name, display_order, created_at, updated_at`

// NodeRepository implements persistence.NodeRepository over database/sql.
// Both SQL backends share it; the $N placeholder form is understood by
// lib/pq and go-sqlite3 alike. The driver package supplies the unique-
// violation predicate since that detection is driver-specific.
type NodeRepository struct {
	db              *sql.DB
	logger          *slog.Logger
	uniqueViolation func(error) bool
}

// NewNodeRepository creates a node repository for one SQL backend.
func NewNodeRepository(db *sql.DB, logger *slog.Logger, uniqueViolation func(error) bool) *NodeRepository {
	return &NodeRepository{db: db, logger: logger, uniqueViolation: uniqueViolation}
}

func (r *NodeRepository) List(ctx context.Context, opts persistence.ListNodesOptions) ([]*models.WorkflowNode, error) {
	query := "SELECT " + nodeColumns + " FROM workflow_nodes"

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if opts.WorkflowName != "" {
		args = append(args, opts.WorkflowName)
		conditions = append(conditions, fmt.Sprintf("workflow_name = $%d", len(args)))
	}

	if opts.Stage != nil {
		args = append(args, string(*opts.Stage))
		conditions = append(conditions, fmt.Sprintf("stage = $%d", len(args)))
	}

	if opts.ParentID != nil {
		args = append(args, *opts.ParentID)
		conditions = append(conditions, fmt.Sprintf("parent_id = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// created_at breaks display_order ties so listing order is stable.
	query += " ORDER BY display_order ASC, created_at ASC, node_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	nodes := make([]*models.WorkflowNode, 0)

	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nodes: %w", err)
	}

	return nodes, nil
}

func (r *NodeRepository) GetByNodeID(ctx context.Context, nodeID string) (*models.WorkflowNode, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+nodeColumns+" FROM workflow_nodes WHERE node_id = $1", nodeID)

	node, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewNodeError("GetByNodeID", nodeID, persistence.ErrNodeNotFound)
	}

	if err != nil {
		return nil, err
	}

	return node, nil
}

func (r *NodeRepository) Create(ctx context.Context, node *models.WorkflowNode) error {
	err := r.insert(ctx, r.db, node)
	if err != nil && r.uniqueViolation(err) {
		return persistence.NewNodeError("Create", node.NodeID, persistence.ErrNodeAlreadyExists)
	}

	if err != nil {
		return fmt.Errorf("failed to create node %s: %w", node.NodeID, err)
	}

	return nil
}

func (r *NodeRepository) Update(ctx context.Context, node *models.WorkflowNode) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE workflow_nodes SET
			parent_id = $1, stage = $2, scenario_title = $3, scenario_description = $4,
			script_name = $5, script_section = $6, script_content = $7,
			on_yes_next_node = $8, on_no_next_node = $9, on_no_response_next_node = $10,
			crm_actions = $11, workflow_name = $12, display_order = $13, updated_at = $14
		WHERE node_id = $15`,
		node.ParentID, string(node.Stage), node.ScenarioTitle, node.ScenarioDescription,
		node.ScriptName, node.ScriptSection, node.ScriptContent,
		node.OnYesNextNode, node.OnNoNextNode, node.OnNoResponseNext,
		node.CRMActions, node.WorkflowName, node.DisplayOrder, node.UpdatedAt,
		node.NodeID)
	if err != nil {
		return fmt.Errorf("failed to update node %s: %w", node.NodeID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of node %s: %w", node.NodeID, err)
	}

	if affected == 0 {
		return persistence.NewNodeError("Update", node.NodeID, persistence.ErrNodeNotFound)
	}

	return nil
}

func (r *NodeRepository) Delete(ctx context.Context, nodeID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflow_nodes WHERE node_id = $1", nodeID)
	if err != nil {
		return fmt.Errorf("failed to delete node %s: %w", nodeID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of node %s: %w", nodeID, err)
	}

	if affected == 0 {
		return persistence.NewNodeError("Delete", nodeID, persistence.ErrNodeNotFound)
	}

	return nil
}

// BulkCreate inserts the batch in one transaction so a conflict anywhere
// persists nothing.
func (r *NodeRepository) BulkCreate(ctx context.Context, nodes []*models.WorkflowNode) error {
	transaction, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	for _, node := range nodes {
		if err := r.insert(ctx, transaction, node); err != nil {
			_ = transaction.Rollback()

			if r.uniqueViolation(err) {
				return persistence.NewNodeError("BulkCreate", node.NodeID, persistence.ErrNodeAlreadyExists)
			}

			return fmt.Errorf("failed to import node %s: %w", node.NodeID, err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *NodeRepository) insert(ctx context.Context, db execer, node *models.WorkflowNode) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO workflow_nodes (`+nodeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		node.ID, node.NodeID, node.ParentID, string(node.Stage),
		node.ScenarioTitle, node.ScenarioDescription,
		node.ScriptName, node.ScriptSection, node.ScriptContent,
		node.OnYesNextNode, node.OnNoNextNode, node.OnNoResponseNext,
		node.CRMActions, node.WorkflowName, node.DisplayOrder,
		node.CreatedAt, node.UpdatedAt)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*models.WorkflowNode, error) {
	var node models.WorkflowNode

	var stage string

	err := row.Scan(
		&node.ID, &node.NodeID, &node.ParentID, &stage,
		&node.ScenarioTitle, &node.ScenarioDescription,
		&node.ScriptName, &node.ScriptSection, &node.ScriptContent,
		&node.OnYesNextNode, &node.OnNoNextNode, &node.OnNoResponseNext,
		&node.CRMActions, &node.WorkflowName, &node.DisplayOrder,
		&node.CreatedAt, &node.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan node row: %w", err)
	}

	node.Stage = models.Stage(stage)

	return &node, nil
}
