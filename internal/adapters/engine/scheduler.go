package engine

import (
	"context"
	"log/slog"

	"github.com/adityaraj1236/linqai/internal/adapters/registry"
	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Scheduler drives a graph to its fixed point: every pass executes the
// nodes whose inputs are ready, and the loop halts when a full pass
// makes no progress. Readiness depends on runtime output values, not
// merely graph shape, so this is topological-by-availability rather
// than a static sort.
type Scheduler struct {
	registry  ports.ExecutorRegistry
	readiness *ReadinessEvaluator
	tracker   *RunTracker
	store     ports.RunStore
	logger    *slog.Logger
}

// NewScheduler wires the core components together. store may be nil, in
// which case completed runs are kept only in the tracker.
func NewScheduler(registry ports.ExecutorRegistry, tracker *RunTracker, store ports.RunStore, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		registry:  registry,
		readiness: NewReadinessEvaluator(registry, logger),
		tracker:   tracker,
		store:     store,
		logger:    logger.With("component", "scheduler"),
	}
}

// Tracker exposes the scheduler's run tracker for history reads.
func (s *Scheduler) Tracker() *RunTracker {
	return s.tracker
}

// RunGraph executes the graph snapshot to completion or first failure
// and returns the finished run record.
//
// Node executions are awaited strictly sequentially in graph order; the
// outputs and executed sets are local to this invocation and never
// escape it. An executor error aborts the run: the node is recorded as
// errored, the run as failed, and no further node is attempted. Nodes
// that never become ready (missing required connection, cyclic
// dependency, empty upstream) are left unexecuted and the run completes
// as partial; success requires every node to have executed.
func (s *Scheduler) RunGraph(ctx context.Context, graph domain.Graph, workflowID string) (*domain.Run, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	runID := s.tracker.StartRun(workflowID)
	s.logger.Info("run started",
		"run_id", runID,
		"workflow_id", workflowID,
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges))

	outputs := make(map[string]*string, len(graph.Nodes))
	executed := make(map[string]bool, len(graph.Nodes))

	for {
		progressed := false

		for _, node := range graph.Nodes {
			if executed[node.ID] {
				continue
			}
			if !s.readiness.IsReady(graph, node, outputs) {
				continue
			}

			output, err := s.executeNode(ctx, runID, graph, node, outputs)
			if err != nil {
				s.failRun(runID, node, err)
				run, _ := s.tracker.GetRun(runID)
				s.persist(ctx, run)
				return run, err
			}

			// Write-once: an output, even a nil one, is never
			// overwritten within the same run.
			outputs[node.ID] = output
			executed[node.ID] = true
			progressed = true
		}

		if !progressed {
			break
		}
	}

	status := domain.RunStatusSuccess
	if len(executed) < len(graph.Nodes) {
		status = domain.RunStatusPartial
		s.logger.Warn("run reached fixed point with unexecuted nodes",
			"run_id", runID,
			"executed", len(executed),
			"total", len(graph.Nodes))
	}

	if err := s.tracker.CompleteRun(runID, status); err != nil {
		s.logger.Error("failed to complete run", "run_id", runID, "error", err)
	}

	run, err := s.tracker.GetRun(runID)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, run)
	s.logger.Info("run finished",
		"run_id", runID,
		"status", run.Status,
		"total_ms", run.TotalMs)
	return run, nil
}

func (s *Scheduler) executeNode(ctx context.Context, runID string, graph domain.Graph, node domain.Node, outputs map[string]*string) (*string, error) {
	executor := s.registry.Resolve(node.Type)

	node, err := registry.WithDefaults(executor, node)
	if err != nil {
		return nil, err
	}

	inputs := ResolveInputs(graph, node, outputs)

	if err := s.tracker.StartNodeExecution(runID, node, inputs); err != nil {
		return nil, err
	}

	s.logger.Debug("executing node",
		"run_id", runID,
		"node_id", node.ID,
		"node_type", node.Type,
		"input_handles", len(inputs))

	output, err := executor.Execute(ctx, node, inputs)
	if err != nil {
		if completeErr := s.tracker.CompleteNodeExecution(runID, node.ID, nil, err.Error()); completeErr != nil {
			s.logger.Error("failed to record node failure",
				"run_id", runID,
				"node_id", node.ID,
				"error", completeErr)
		}
		return nil, domain.NewNodeError(node.ID, "execute", err)
	}

	if err := s.tracker.CompleteNodeExecution(runID, node.ID, output, ""); err != nil {
		s.logger.Error("failed to record node completion",
			"run_id", runID,
			"node_id", node.ID,
			"error", err)
	}

	return output, nil
}

func (s *Scheduler) failRun(runID string, node domain.Node, err error) {
	s.logger.Error("node execution failed, aborting run",
		"run_id", runID,
		"node_id", node.ID,
		"node_type", node.Type,
		"error", err)

	if completeErr := s.tracker.CompleteRun(runID, domain.RunStatusFailed); completeErr != nil {
		s.logger.Error("failed to mark run failed", "run_id", runID, "error", completeErr)
	}
}

// persist saves a terminal run to the store. Persistence is a
// best-effort side channel: failures are logged and never alter the run
// status already computed.
func (s *Scheduler) persist(ctx context.Context, run *domain.Run) {
	if s.store == nil || run == nil {
		return
	}

	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Warn("failed to persist run",
			"run_id", run.ID,
			"workflow_id", run.WorkflowID,
			"error", err)
	}
}
