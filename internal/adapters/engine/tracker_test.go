package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

func TestRunTracker_StartRun(t *testing.T) {
	tracker := NewRunTracker(testLogger())

	runID := tracker.StartRun("wf-1")
	require.NotEmpty(t, runID)

	run, err := tracker.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, run.Status)
	assert.Equal(t, "wf-1", run.WorkflowID)
	assert.Empty(t, run.NodeExecutions)
	assert.Nil(t, run.CompletedAt)
}

func TestRunTracker_NodeExecutionLifecycle(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	node := domain.Node{ID: "crop-1", Type: "crop", Label: "Crop Image"}
	inputs := ports.Inputs{"default": strPtr("img.png")}

	require.NoError(t, tracker.StartNodeExecution(runID, node, inputs))

	run, err := tracker.GetRun(runID)
	require.NoError(t, err)
	require.Len(t, run.NodeExecutions, 1)

	exec := run.NodeExecutions[0]
	assert.Equal(t, domain.NodeStatusExecuting, exec.Status)
	assert.Equal(t, "crop-1", exec.NodeID)
	assert.Equal(t, "Crop Image", exec.NodeLabel)
	assert.Equal(t, "crop", exec.NodeType)
	assert.Equal(t, "img.png", exec.Inputs["default"])
	assert.Nil(t, exec.CompletedAt)

	require.NoError(t, tracker.CompleteNodeExecution(runID, "crop-1", strPtr("img-cropped.png"), ""))

	run, err = tracker.GetRun(runID)
	require.NoError(t, err)
	exec = run.NodeExecutions[0]
	assert.Equal(t, domain.NodeStatusSuccess, exec.Status)
	require.NotNil(t, exec.Output)
	assert.Equal(t, "img-cropped.png", *exec.Output)
	require.NotNil(t, exec.CompletedAt)
	assert.GreaterOrEqual(t, exec.DurationMs, int64(0))
}

func TestRunTracker_CompleteWithError(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	require.NoError(t, tracker.StartNodeExecution(runID, domain.Node{ID: "llm-1", Type: "llm"}, nil))
	require.NoError(t, tracker.CompleteNodeExecution(runID, "llm-1", nil, "model request failed"))

	run, err := tracker.GetRun(runID)
	require.NoError(t, err)
	exec := run.NodeExecutions[0]
	assert.Equal(t, domain.NodeStatusError, exec.Status)
	assert.Equal(t, "model request failed", exec.ErrorMessage)
	assert.Nil(t, exec.Output)
}

func TestRunTracker_CompleteTwiceFails(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	require.NoError(t, tracker.StartNodeExecution(runID, domain.Node{ID: "n", Type: "src"}, nil))
	require.NoError(t, tracker.CompleteNodeExecution(runID, "n", strPtr("v"), ""))

	// The record reached a terminal status; there is nothing left to
	// transition.
	err := tracker.CompleteNodeExecution(runID, "n", strPtr("other"), "")
	assert.Error(t, err)
}

func TestRunTracker_DuplicateStartCreatesTwoRecords(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	node := domain.Node{ID: "n", Type: "src"}
	require.NoError(t, tracker.StartNodeExecution(runID, node, nil))
	require.NoError(t, tracker.StartNodeExecution(runID, node, nil))

	run, err := tracker.GetRun(runID)
	require.NoError(t, err)
	assert.Len(t, run.NodeExecutions, 2)

	// Completion resolves the most recent executing record first.
	require.NoError(t, tracker.CompleteNodeExecution(runID, "n", strPtr("v"), ""))
	run, _ = tracker.GetRun(runID)
	assert.Equal(t, domain.NodeStatusExecuting, run.NodeExecutions[0].Status)
	assert.Equal(t, domain.NodeStatusSuccess, run.NodeExecutions[1].Status)
}

func TestRunTracker_CompleteRun(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	require.NoError(t, tracker.CompleteRun(runID, domain.RunStatusSuccess))

	run, err := tracker.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSuccess, run.Status)
	require.NotNil(t, run.CompletedAt)
	assert.GreaterOrEqual(t, run.TotalMs, int64(0))

	// Terminal runs are immutable.
	assert.Error(t, tracker.CompleteRun(runID, domain.RunStatusFailed))
}

func TestRunTracker_UnknownRun(t *testing.T) {
	tracker := NewRunTracker(testLogger())

	assert.ErrorIs(t, tracker.StartNodeExecution("missing", domain.Node{ID: "n"}, nil), domain.ErrRunNotFound)
	assert.ErrorIs(t, tracker.CompleteNodeExecution("missing", "n", nil, ""), domain.ErrRunNotFound)
	assert.ErrorIs(t, tracker.CompleteRun("missing", domain.RunStatusSuccess), domain.ErrRunNotFound)

	_, err := tracker.GetRun("missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRunTracker_SnapshotsAreCopies(t *testing.T) {
	tracker := NewRunTracker(testLogger())
	runID := tracker.StartRun("")

	require.NoError(t, tracker.StartNodeExecution(runID, domain.Node{ID: "n", Type: "src"}, nil))

	snapshot, err := tracker.GetRun(runID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the live record.
	snapshot.Status = domain.RunStatusFailed
	snapshot.NodeExecutions[0].Status = domain.NodeStatusError

	fresh, err := tracker.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, fresh.Status)
	assert.Equal(t, domain.NodeStatusExecuting, fresh.NodeExecutions[0].Status)
}

func TestRunTracker_RunsNewestFirst(t *testing.T) {
	tracker := NewRunTracker(testLogger())

	first := tracker.StartRun("")
	second := tracker.StartRun("")

	runs := tracker.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)

	tracker.Clear()
	assert.Empty(t, tracker.Runs())
}
