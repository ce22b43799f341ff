package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// RunTracker records run and node lifecycle events into in-memory run
// logs. State is keyed by run id, so concurrent runs are tracked
// independently. All reads return deep-copied snapshots; no live record
// is ever exposed.
type RunTracker struct {
	runs   map[string]*domain.Run
	order  []string
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewRunTracker(logger *slog.Logger) *RunTracker {
	if logger == nil {
		logger = slog.Default()
	}

	return &RunTracker{
		runs:   make(map[string]*domain.Run),
		logger: logger.With("component", "run-tracker"),
	}
}

// StartRun creates a run in running status with an empty execution list
// and returns its id.
func (t *RunTracker) StartRun(workflowID string) string {
	run := &domain.Run{
		ID:         uuid.NewString(),
		WorkflowID: workflowID,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now(),
	}

	t.mu.Lock()
	t.runs[run.ID] = run
	t.order = append(t.order, run.ID)
	t.mu.Unlock()

	t.logger.Debug("run started", "run_id", run.ID, "workflow_id", workflowID)
	return run.ID
}

// StartNodeExecution appends an executing record for the node. Callers
// must call at most once per node per run; a second call appends a
// second record.
func (t *RunTracker) StartNodeExecution(runID string, node domain.Node, inputs ports.Inputs) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	run, exists := t.runs[runID]
	if !exists {
		return domain.ErrRunNotFound
	}

	recorded := make(map[string]interface{}, len(inputs))
	for handle, value := range inputs {
		if value != nil {
			recorded[handle] = *value
		} else {
			recorded[handle] = nil
		}
	}

	run.NodeExecutions = append(run.NodeExecutions, domain.NodeExecution{
		ID:        uuid.NewString(),
		NodeID:    node.ID,
		NodeLabel: node.DisplayLabel(),
		NodeType:  node.Type,
		Status:    domain.NodeStatusExecuting,
		Inputs:    recorded,
		StartedAt: time.Now(),
	})

	t.logger.Debug("node execution started",
		"run_id", runID,
		"node_id", node.ID,
		"node_type", node.Type)
	return nil
}

// CompleteNodeExecution transitions the most recent executing record for
// nodeID to success (no error message) or error, stamping completion
// time and duration. The record is immutable afterwards.
func (t *RunTracker) CompleteNodeExecution(runID, nodeID string, output *string, errorMessage string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	run, exists := t.runs[runID]
	if !exists {
		return domain.ErrRunNotFound
	}

	for i := len(run.NodeExecutions) - 1; i >= 0; i-- {
		exec := &run.NodeExecutions[i]
		if exec.NodeID != nodeID || exec.Status != domain.NodeStatusExecuting {
			continue
		}

		now := time.Now()
		exec.CompletedAt = &now
		exec.DurationMs = now.Sub(exec.StartedAt).Milliseconds()
		exec.Output = output
		exec.ErrorMessage = errorMessage
		if errorMessage != "" {
			exec.Status = domain.NodeStatusError
		} else {
			exec.Status = domain.NodeStatusSuccess
		}

		t.logger.Debug("node execution completed",
			"run_id", runID,
			"node_id", nodeID,
			"status", exec.Status,
			"duration_ms", exec.DurationMs)
		return nil
	}

	return domain.NewNodeError(nodeID, "complete_execution", domain.ErrNotFound)
}

// CompleteRun stamps the run's end time, final status, and total
// duration.
func (t *RunTracker) CompleteRun(runID string, status domain.RunStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	run, exists := t.runs[runID]
	if !exists {
		return domain.ErrRunNotFound
	}
	if run.Terminal() {
		return domain.NewNodeError(runID, "complete_run", domain.ErrInvalidInput)
	}

	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	run.TotalMs = now.Sub(run.StartedAt).Milliseconds()

	t.logger.Debug("run completed",
		"run_id", runID,
		"status", status,
		"total_ms", run.TotalMs,
		"node_executions", len(run.NodeExecutions))
	return nil
}

// GetRun returns a snapshot of the run, or ErrRunNotFound.
func (t *RunTracker) GetRun(runID string) (*domain.Run, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, exists := t.runs[runID]
	if !exists {
		return nil, domain.ErrRunNotFound
	}
	return run.Clone(), nil
}

// Runs returns snapshots of all tracked runs, newest first.
func (t *RunTracker) Runs() []*domain.Run {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshots := make([]*domain.Run, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		snapshots = append(snapshots, t.runs[t.order[i]].Clone())
	}
	return snapshots
}

// Clear drops all tracked runs.
func (t *RunTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs = make(map[string]*domain.Run)
	t.order = nil
}
