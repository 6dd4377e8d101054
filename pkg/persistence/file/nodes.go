package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// NodeRepository stores one JSON file per node under <root>/nodes, named by
// the stable node_id.
type NodeRepository struct {
	root string
}

// NewNodeRepository creates a new file-backed node repository.
func NewNodeRepository(root string) *NodeRepository {
	return &NodeRepository{root: root}
}

func (r *NodeRepository) dir() string {
	return path.Join(r.root, "nodes")
}

func (r *NodeRepository) path(nodeID string) string {
	return path.Join(r.dir(), nodeID+".json")
}

func (r *NodeRepository) List(_ context.Context, opts persistence.ListNodesOptions) ([]*models.WorkflowNode, error) {
	entries, err := fs.Glob(os.DirFS(r.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list node files: %w", err)
	}

	nodes := make([]*models.WorkflowNode, 0, len(entries))

	for _, entry := range entries {
		node, err := r.load(path.Join(r.dir(), entry))
		if err != nil {
			return nil, err
		}

		if opts.WorkflowName != "" && node.WorkflowName != opts.WorkflowName {
			continue
		}

		if opts.Stage != nil && node.Stage != *opts.Stage {
			continue
		}

		if opts.ParentID != nil && node.ParentID != *opts.ParentID {
			continue
		}

		nodes = append(nodes, node)
	}

	// Same ordering contract as the SQL backends: display_order with
	// created_at/node_id breaking ties deterministically.
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].DisplayOrder != nodes[j].DisplayOrder {
			return nodes[i].DisplayOrder < nodes[j].DisplayOrder
		}

		if !nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
		}

		return nodes[i].NodeID < nodes[j].NodeID
	})

	return nodes, nil
}

func (r *NodeRepository) GetByNodeID(_ context.Context, nodeID string) (*models.WorkflowNode, error) {
	node, err := r.load(r.path(nodeID))
	if os.IsNotExist(err) {
		return nil, persistence.NewNodeError("GetByNodeID", nodeID, persistence.ErrNodeNotFound)
	}

	if err != nil {
		return nil, err
	}

	return node, nil
}

func (r *NodeRepository) Create(_ context.Context, node *models.WorkflowNode) error {
	if _, err := os.Stat(r.path(node.NodeID)); err == nil {
		return persistence.NewNodeError("Create", node.NodeID, persistence.ErrNodeAlreadyExists)
	}

	return r.write(node)
}

func (r *NodeRepository) Update(_ context.Context, node *models.WorkflowNode) error {
	if _, err := os.Stat(r.path(node.NodeID)); os.IsNotExist(err) {
		return persistence.NewNodeError("Update", node.NodeID, persistence.ErrNodeNotFound)
	}

	return r.write(node)
}

func (r *NodeRepository) Delete(_ context.Context, nodeID string) error {
	err := os.Remove(r.path(nodeID))
	if os.IsNotExist(err) {
		return persistence.NewNodeError("Delete", nodeID, persistence.ErrNodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("failed to delete node %s: %w", nodeID, err)
	}

	return nil
}

// BulkCreate checks the whole batch against existing files first, then
// writes. A write failure rolls back the files already written so the batch
// stays all-or-nothing.
func (r *NodeRepository) BulkCreate(_ context.Context, nodes []*models.WorkflowNode) error {
	for _, node := range nodes {
		if _, err := os.Stat(r.path(node.NodeID)); err == nil {
			return persistence.NewNodeError("BulkCreate", node.NodeID, persistence.ErrNodeAlreadyExists)
		}
	}

	written := make([]string, 0, len(nodes))

	for _, node := range nodes {
		if err := r.write(node); err != nil {
			for _, nodeID := range written {
				_ = os.Remove(r.path(nodeID))
			}

			return err
		}

		written = append(written, node.NodeID)
	}

	return nil
}

func (r *NodeRepository) load(filePath string) (*models.WorkflowNode, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var node models.WorkflowNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode node file %s: %w", filePath, err)
	}

	return &node, nil
}

func (r *NodeRepository) write(node *models.WorkflowNode) error {
	if err := os.MkdirAll(r.dir(), dirPermissions); err != nil {
		return fmt.Errorf("failed to create nodes directory: %w", err)
	}

	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode node %s: %w", node.NodeID, err)
	}

	if err := os.WriteFile(r.path(node.NodeID), data, filePermissions); err != nil {
		return fmt.Errorf("failed to write node %s: %w", node.NodeID, err)
	}

	return nil
}
