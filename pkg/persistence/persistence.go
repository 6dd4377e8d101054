// Package persistence provides the data storage abstraction for workflow
// nodes and the read-only lead/profile collections.
package persistence

import (
	"context"

	"github.com/atechlabs/scriptflow/pkg/models"
)

// Persistence aggregates the repositories a backend must provide.
type Persistence interface {
	NodeRepository() NodeRepository
	LeadRepository() LeadRepository
	ProfileRepository() ProfileRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// ListNodesOptions filters and scopes node listings. Results are always
// ordered ascending by display_order; the sort must be stable so equal
// orders keep insertion order.
type ListNodesOptions struct {
	WorkflowName string
	Stage        *models.Stage
	ParentID     *string
}

// NodeRepository stores workflow nodes keyed by their stable NodeID. The
// store-internal surrogate ID is assigned on create and never reused as a
// graph-edge target.
type NodeRepository interface {
	// List returns nodes matching opts ordered by display_order.
	List(ctx context.Context, opts ListNodesOptions) ([]*models.WorkflowNode, error)

	// GetByNodeID returns the node with the given stable id, or
	// ErrNodeNotFound.
	GetByNodeID(ctx context.Context, nodeID string) (*models.WorkflowNode, error)

	// Create inserts a new node. Returns ErrNodeAlreadyExists when the
	// NodeID is taken.
	Create(ctx context.Context, node *models.WorkflowNode) error

	// Update replaces the stored node identified by node.NodeID. Returns
	// ErrNodeNotFound for unknown ids.
	Update(ctx context.Context, node *models.WorkflowNode) error

	// Delete removes a single node. Dangling outcome edges in other nodes
	// are left as-is. Returns ErrNodeNotFound for unknown ids.
	Delete(ctx context.Context, nodeID string) error

	// BulkCreate inserts a batch atomically: a duplicate NodeID anywhere in
	// the batch or the store fails the whole call with ErrNodeAlreadyExists
	// and persists nothing.
	BulkCreate(ctx context.Context, nodes []*models.WorkflowNode) error
}

// LeadRepository reads lead contact records for placeholder context.
type LeadRepository interface {
	List(ctx context.Context) ([]*models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
}

// ProfileRepository reads operator records for placeholder context.
type ProfileRepository interface {
	List(ctx context.Context) ([]*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}
