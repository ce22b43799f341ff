package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("edge references unknown node")
	ErrRunNotFound   = errors.New("run not found")
	ErrEmptyText     = errors.New("text cannot be empty")
	ErrClosed        = errors.New("store closed")
)

// NodeError wraps a failure attributed to one node of a run.
type NodeError struct {
	NodeID string
	Op     string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node[%s] %s: %v", e.NodeID, e.Op, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func NewNodeError(nodeID, op string, err error) *NodeError {
	return &NodeError{NodeID: nodeID, Op: op, Err: err}
}

// GraphError reports a structural problem with a graph snapshot.
type GraphError struct {
	Kind string
	ID   string
	Err  error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

func NewGraphError(kind, id string, err error) *GraphError {
	return &GraphError{Kind: kind, ID: id, Err: err}
}

// ExecutorRegistrationError describes a failed executor registration.
type ExecutorRegistrationError struct {
	NodeType string
	Reason   string
}

func (e *ExecutorRegistrationError) Error() string {
	return fmt.Sprintf("executor registration failed for %q: %s", e.NodeType, e.Reason)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrRunNotFound)
}

func IsNodeError(err error) bool {
	var nodeErr *NodeError
	return errors.As(err, &nodeErr)
}
