// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"

	"github.com/atechlabs/scriptflow/pkg/persistence"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidStage    = errors.New("invalid stage")
	ErrNodeNil         = errors.New("node cannot be nil")
	ErrEmptyNodeID     = errors.New("node_id cannot be empty")
	ErrEmptyWorkflow   = errors.New("workflow name cannot be empty")
	ErrImportEmpty     = errors.New("import batch is empty")
	ErrImportDuplicate = errors.New("import batch contains duplicate node_id")
	ErrImportSchema    = errors.New("import document does not match schema")

	// Not-found errors surfaced by the service layer.
	ErrNodeNotFound     = persistence.ErrNodeNotFound
	ErrWorkflowNotFound = errors.New("workflow not found")

	// Conflicts (409).
	ErrNodeAlreadyExists = persistence.ErrNodeAlreadyExists
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Err: err}
}

// CascadeError reports a workflow cascade delete that aborted mid-sequence.
// Nodes already deleted stay deleted; the graph is left in the intermediate
// state and the caller is told exactly how far the sequence got.
type CascadeError struct {
	WorkflowName string
	Deleted      int
	Remaining    int
	Err          error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf(
		"delete workflow %q aborted after %d of %d nodes: %v",
		e.WorkflowName, e.Deleted, e.Deleted+e.Remaining, e.Err,
	)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidStage) ||
		errors.Is(err, ErrNodeNil) ||
		errors.Is(err, ErrEmptyNodeID) ||
		errors.Is(err, ErrEmptyWorkflow) ||
		errors.Is(err, ErrImportEmpty) ||
		errors.Is(err, ErrImportDuplicate) ||
		errors.Is(err, ErrImportSchema)
}

// IsConflictError checks if an error should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrNodeAlreadyExists)
}

// IsCascadeError extracts a CascadeError when the error chain carries one.
func IsCascadeError(err error) (*CascadeError, bool) {
	var cascade *CascadeError
	if errors.As(err, &cascade) {
		return cascade, true
	}

	return nil, false
}
