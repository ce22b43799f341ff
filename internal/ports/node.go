package ports

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
)

// Inputs is the resolved named-input map handed to an executor: one
// entry per incoming edge, keyed by target handle. A nil value means
// the upstream node executed but produced no output.
type Inputs map[string]*string

// Get returns the value for handle, or nil when absent or explicitly
// empty.
func (in Inputs) Get(handle string) *string {
	return in[handle]
}

// Text returns the string under handle, or "" when absent or nil.
func (in Inputs) Text(handle string) string {
	if v, ok := in[handle]; ok && v != nil {
		return *v
	}
	return ""
}

// NodeExecutor performs one node type's unit of work. Execute is a
// single attempt with no scheduler-level retry; any error it returns is
// fatal to the run.
type NodeExecutor interface {
	Name() string

	// RequiredHandles lists the input slots that must all be connected
	// and populated before the node may execute. Empty means the node
	// is a source and runs immediately.
	RequiredHandles() []string

	// AcceptsNullInput reports whether the node tolerates an executed
	// upstream that recorded no output (terminal display nodes do, so
	// the graph does not deadlock on an empty producer).
	AcceptsNullInput() bool

	Execute(ctx context.Context, node domain.Node, inputs Inputs) (*string, error)
}

// ConfigDefaulter is implemented by executors whose node types carry
// default configuration (crop dimensions, frame position). Defaults are
// merged under the node's own config before dispatch; node values win.
type ConfigDefaulter interface {
	ConfigDefaults() domain.NodeConfig
}
