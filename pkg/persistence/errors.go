// Package persistence provides standardized error types for storage operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrNodeNotFound indicates a node was not found by the given NodeID.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNodeAlreadyExists indicates a node with the same NodeID already exists.
	ErrNodeAlreadyExists = errors.New("node already exists")

	// ErrLeadNotFound indicates a lead was not found by the given identifier.
	ErrLeadNotFound = errors.New("lead not found")

	// ErrProfileNotFound indicates a profile was not found by the given identifier.
	ErrProfileNotFound = errors.New("profile not found")
)

// NodeError wraps node-related storage errors with operation context.
type NodeError struct {
	Op     string // Operation being performed (e.g., "Create", "Delete")
	NodeID string // Stable node id if applicable
	Err    error  // Underlying error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s operation failed for node %s: %v", e.Op, e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func (e *NodeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewNodeError creates a new node error with context.
func NewNodeError(op, nodeID string, err error) *NodeError {
	return &NodeError{Op: op, NodeID: nodeID, Err: err}
}

// IsNodeNotFound checks if an error indicates a node was not found.
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsNodeAlreadyExists checks if an error indicates a NodeID conflict.
func IsNodeAlreadyExists(err error) bool {
	return errors.Is(err, ErrNodeAlreadyExists)
}

// IsLeadNotFound checks if an error indicates a lead was not found.
func IsLeadNotFound(err error) bool {
	return errors.Is(err, ErrLeadNotFound)
}

// IsProfileNotFound checks if an error indicates a profile was not found.
func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}
