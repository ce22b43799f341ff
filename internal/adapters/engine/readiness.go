package engine

import (
	"log/slog"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// ReadinessEvaluator decides whether a node's required input handles are
// all satisfiable given the outputs produced so far. It is pure: the
// scheduler re-evaluates it on every pass and it never mutates anything.
type ReadinessEvaluator struct {
	registry ports.ExecutorRegistry
	logger   *slog.Logger
}

func NewReadinessEvaluator(registry ports.ExecutorRegistry, logger *slog.Logger) *ReadinessEvaluator {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReadinessEvaluator{
		registry: registry,
		logger:   logger.With("component", "readiness-evaluator"),
	}
}

// IsReady reports whether every required handle of node is backed by an
// incoming edge whose source has already recorded an output. A node with
// no required handles is a source and is always ready.
//
// A recorded nil output satisfies a handle only for executors that
// tolerate null input; otherwise the empty-but-executed producer keeps
// the consumer pending, and the fixed-point loop leaves it unexecuted.
func (re *ReadinessEvaluator) IsReady(graph domain.Graph, node domain.Node, outputs map[string]*string) bool {
	executor := re.registry.Resolve(node.Type)
	required := executor.RequiredHandles()
	if len(required) == 0 {
		return true
	}

	incoming := graph.IncomingEdges(node.ID)

	for _, handle := range required {
		edge, connected := findEdge(incoming, handle)
		if !connected {
			re.logger.Debug("required handle unconnected",
				"node_id", node.ID,
				"node_type", node.Type,
				"handle", handle)
			return false
		}

		value, produced := outputs[edge.Source]
		if !produced {
			return false
		}

		if value == nil && !executor.AcceptsNullInput() {
			re.logger.Debug("upstream produced no output",
				"node_id", node.ID,
				"source", edge.Source,
				"handle", handle)
			return false
		}
	}

	return true
}

func findEdge(incoming []domain.Edge, handle string) (domain.Edge, bool) {
	for _, edge := range incoming {
		if edge.Handle() == handle {
			return edge, true
		}
	}
	return domain.Edge{}, false
}
