package domain

import (
	"time"
)

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusPartial RunStatus = "partial"
	RunStatusFailed  RunStatus = "failed"
)

type NodeStatus string

const (
	NodeStatusExecuting NodeStatus = "executing"
	NodeStatusSuccess   NodeStatus = "success"
	NodeStatusError     NodeStatus = "error"
)

// NodeExecution records one node's attempt within a run. It is created
// in executing status when the node starts and transitions exactly once
// to success or error; it is immutable after that.
type NodeExecution struct {
	ID           string                 `json:"id"`
	NodeID       string                 `json:"node_id"`
	NodeLabel    string                 `json:"node_label"`
	NodeType     string                 `json:"node_type"`
	Status       NodeStatus             `json:"status"`
	Inputs       map[string]interface{} `json:"inputs,omitempty"`
	Output       *string                `json:"output,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	StartedAt    time.Time              `json:"started_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
	DurationMs   int64                  `json:"duration_ms,omitempty"`
}

// Run is one end-to-end execution attempt over a graph snapshot. It
// exclusively owns its NodeExecutions.
type Run struct {
	ID             string          `json:"id"`
	WorkflowID     string          `json:"workflow_id,omitempty"`
	Status         RunStatus       `json:"status"`
	StartedAt      time.Time       `json:"started_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	TotalMs        int64           `json:"total_ms,omitempty"`
	NodeExecutions []NodeExecution `json:"node_executions"`
}

// Terminal reports whether the run has reached a final status.
func (r *Run) Terminal() bool {
	return r.Status != RunStatusRunning
}

// Clone deep-copies the run so tracker snapshots are safe to hand out
// while the live record keeps mutating.
func (r *Run) Clone() *Run {
	clone := *r
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		clone.CompletedAt = &at
	}
	clone.NodeExecutions = make([]NodeExecution, len(r.NodeExecutions))
	for i, exec := range r.NodeExecutions {
		clone.NodeExecutions[i] = exec.clone()
	}
	return &clone
}

func (e NodeExecution) clone() NodeExecution {
	if e.CompletedAt != nil {
		at := *e.CompletedAt
		e.CompletedAt = &at
	}
	if e.Output != nil {
		out := *e.Output
		e.Output = &out
	}
	if e.Inputs != nil {
		inputs := make(map[string]interface{}, len(e.Inputs))
		for k, v := range e.Inputs {
			inputs[k] = v
		}
		e.Inputs = inputs
	}
	return e
}

// OutputMap rebuilds the per-node output map from a stored run so a
// caller can restore results onto the canvas without re-executing.
func (r *Run) OutputMap() map[string]*string {
	outputs := make(map[string]*string, len(r.NodeExecutions))
	for _, exec := range r.NodeExecutions {
		if exec.Status != NodeStatusSuccess {
			continue
		}
		if exec.Output != nil {
			out := *exec.Output
			outputs[exec.NodeID] = &out
		} else {
			outputs[exec.NodeID] = nil
		}
	}
	return outputs
}
