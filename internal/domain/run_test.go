package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRun_Terminal(t *testing.T) {
	assert.False(t, (&Run{Status: RunStatusRunning}).Terminal())
	assert.True(t, (&Run{Status: RunStatusSuccess}).Terminal())
	assert.True(t, (&Run{Status: RunStatusPartial}).Terminal())
	assert.True(t, (&Run{Status: RunStatusFailed}).Terminal())
}

func TestRun_CloneIsIndependent(t *testing.T) {
	completed := time.Now()
	run := &Run{
		ID:          "run-1",
		Status:      RunStatusSuccess,
		CompletedAt: &completed,
		NodeExecutions: []NodeExecution{
			{
				NodeID: "a",
				Status: NodeStatusSuccess,
				Output: strPtr("value"),
				Inputs: map[string]interface{}{"default": "in"},
			},
		},
	}

	clone := run.Clone()
	clone.Status = RunStatusFailed
	clone.NodeExecutions[0].Status = NodeStatusError
	*clone.NodeExecutions[0].Output = "mutated"
	clone.NodeExecutions[0].Inputs["default"] = "mutated"
	*clone.CompletedAt = completed.Add(time.Hour)

	assert.Equal(t, RunStatusSuccess, run.Status)
	assert.Equal(t, NodeStatusSuccess, run.NodeExecutions[0].Status)
	assert.Equal(t, "value", *run.NodeExecutions[0].Output)
	assert.Equal(t, "in", run.NodeExecutions[0].Inputs["default"])
	assert.True(t, run.CompletedAt.Equal(completed))
}

func TestRun_OutputMap(t *testing.T) {
	run := &Run{
		NodeExecutions: []NodeExecution{
			{NodeID: "a", Status: NodeStatusSuccess, Output: strPtr("img.png")},
			{NodeID: "b", Status: NodeStatusSuccess, Output: nil},
			{NodeID: "c", Status: NodeStatusError, ErrorMessage: "boom"},
			{NodeID: "d", Status: NodeStatusExecuting},
		},
	}

	outputs := run.OutputMap()
	require.Len(t, outputs, 2)

	require.Contains(t, outputs, "a")
	assert.Equal(t, "img.png", *outputs["a"])

	// A successful node with no output restores as an explicit nil.
	require.Contains(t, outputs, "b")
	assert.Nil(t, outputs["b"])

	assert.NotContains(t, outputs, "c")
	assert.NotContains(t, outputs, "d")
}
