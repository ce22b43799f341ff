package registry

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"dario.cat/mergo"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Adapter maps node type tags to their executors. Adding a node type to
// the system is a registration here, not a scheduler change.
type Adapter struct {
	executors map[string]ports.NodeExecutor
	fallback  ports.NodeExecutor
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewAdapter(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		executors: make(map[string]ports.NodeExecutor),
		fallback:  passThrough{},
		logger:    logger.With("component", "executor-registry"),
	}
}

func (r *Adapter) Register(executor ports.NodeExecutor) error {
	if executor == nil {
		r.logger.Error("attempted to register nil executor")
		return &domain.ExecutorRegistrationError{
			NodeType: "<nil>",
			Reason:   "executor cannot be nil",
		}
	}

	nodeType := executor.Name()
	if nodeType == "" {
		r.logger.Error("attempted to register executor with empty type")
		return &domain.ExecutorRegistrationError{
			NodeType: nodeType,
			Reason:   "node type cannot be empty",
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[nodeType]; exists {
		r.logger.Debug("executor registration failed - already exists", "node_type", nodeType)
		return &domain.ExecutorRegistrationError{
			NodeType: nodeType,
			Reason:   "node type already registered",
		}
	}

	r.executors[nodeType] = executor
	r.logger.Debug("executor registered", "node_type", nodeType, "total_types", len(r.executors))
	return nil
}

// Resolve returns the executor for nodeType, or the pass-through
// fallback when the type is unknown.
func (r *Adapter) Resolve(nodeType string) ports.NodeExecutor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if executor, exists := r.executors[nodeType]; exists {
		return executor
	}

	r.logger.Debug("unknown node type, using pass-through", "node_type", nodeType)
	return r.fallback
}

func (r *Adapter) Has(nodeType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.executors[nodeType]
	return exists
}

func (r *Adapter) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.executors))
	for nodeType := range r.executors {
		types = append(types, nodeType)
	}
	sort.Strings(types)
	return types
}

func (r *Adapter) Unregister(nodeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[nodeType]; !exists {
		return domain.NewNodeError(nodeType, "unregister", domain.ErrNotFound)
	}

	delete(r.executors, nodeType)
	r.logger.Debug("executor unregistered", "node_type", nodeType, "remaining_types", len(r.executors))
	return nil
}

// WithDefaults merges the executor's type-level default config under the
// node's own config. Node values always win over defaults.
func WithDefaults(executor ports.NodeExecutor, node domain.Node) (domain.Node, error) {
	defaulter, ok := executor.(ports.ConfigDefaulter)
	if !ok {
		return node, nil
	}

	config := node.Config.Clone()
	if err := mergo.Merge(&config, defaulter.ConfigDefaults()); err != nil {
		return node, domain.NewNodeError(node.ID, "merge_config_defaults", err)
	}

	node.Config = config
	return node, nil
}

// passThrough echoes the default input. It backs unknown node types so
// an unrecognized node degrades gracefully instead of failing the run.
type passThrough struct{}

func (passThrough) Name() string              { return "" }
func (passThrough) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (passThrough) AcceptsNullInput() bool    { return false }

func (passThrough) Execute(_ context.Context, _ domain.Node, inputs ports.Inputs) (*string, error) {
	return inputs.Get(domain.DefaultHandle), nil
}
