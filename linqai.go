// Package linqai provides the graph execution engine behind the LinqAI
// canvas: a directed graph of typed processing nodes (image upload,
// crop, text, LLM description, video frame extraction, marketing copy)
// executed end-to-end with per-node status, inputs, outputs, timing,
// and failure tracking.
//
// The engine schedules nodes by data-readiness: every pass executes the
// nodes whose required input handles are all backed by already-produced
// upstream outputs, and the run terminates at the fixed point where no
// node can progress. Node work is delegated to registered executors;
// the engine only owns ordering, input propagation, and the run record.
//
// Basic usage:
//
//	runner, _ := linqai.New(linqai.Config{DataDir: "./data"})
//	defer runner.Close()
//
//	run, err := runner.RunGraph(ctx, graph, workflowID)
package linqai

import (
	"context"
	"log/slog"

	"github.com/adityaraj1236/linqai/internal/adapters/engine"
	"github.com/adityaraj1236/linqai/internal/adapters/executors"
	"github.com/adityaraj1236/linqai/internal/adapters/ffmpeg"
	"github.com/adityaraj1236/linqai/internal/adapters/llm"
	"github.com/adityaraj1236/linqai/internal/adapters/media"
	"github.com/adityaraj1236/linqai/internal/adapters/registry"
	"github.com/adityaraj1236/linqai/internal/adapters/runstore"
	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Graph is an immutable snapshot of the canvas: nodes plus directed data
// dependencies between named input handles.
type Graph = domain.Graph

// Node is one typed unit of work on the canvas.
type Node = domain.Node

// Edge is a directed data dependency from a node's output to another
// node's named input handle.
type Edge = domain.Edge

// NodeConfig is the type-specific key/value configuration of a node.
type NodeConfig = domain.NodeConfig

// Run is the structured trace of one end-to-end execution attempt.
type Run = domain.Run

// NodeExecution is the record of one node's attempt within a run.
type NodeExecution = domain.NodeExecution

// RunStatus is the lifecycle status of a run.
type RunStatus = domain.RunStatus

// NodeStatus is the lifecycle status of a node execution.
type NodeStatus = domain.NodeStatus

const (
	RunStatusRunning = domain.RunStatusRunning
	RunStatusSuccess = domain.RunStatusSuccess
	RunStatusPartial = domain.RunStatusPartial
	RunStatusFailed  = domain.RunStatusFailed

	NodeStatusExecuting = domain.NodeStatusExecuting
	NodeStatusSuccess   = domain.NodeStatusSuccess
	NodeStatusError     = domain.NodeStatusError
)

// NodeExecutor is the per-node-type capability contract: required input
// handles plus the unit of work.
type NodeExecutor = ports.NodeExecutor

// Inputs is the resolved named-input map handed to an executor.
type Inputs = ports.Inputs

// Services holds the external capabilities consumed by the built-in
// executors.
type Services = executors.Services

// MediaConfig configures the assembly-based media processing client.
type MediaConfig = media.Config

// LLMConfig configures the generative model client.
type LLMConfig = llm.Config

// FfmpegConfig configures the local frame extraction runner.
type FfmpegConfig = ffmpeg.Config

// Config assembles a Runner. The zero value runs fully in memory with
// only caller-registered executors.
type Config struct {
	// DataDir is the directory for the durable run store. Empty keeps
	// run history in memory only.
	DataDir string

	// Services supplies the external capabilities for the built-in
	// executors. When nil, no built-ins are registered and every node
	// type must be registered by the caller.
	Services *Services

	Logger *slog.Logger
}

// DefaultServices wires the built-in executors to their production
// collaborators: the assembly media client, the local ffmpeg runner,
// and the generative model client.
func DefaultServices(mediaCfg MediaConfig, llmCfg LLMConfig, ffmpegCfg FfmpegConfig, logger *slog.Logger) Services {
	return Services{
		Images: media.NewClient(mediaCfg, logger),
		Frames: ffmpeg.NewExtractor(ffmpegCfg, logger),
		Models: llm.NewClient(llmCfg, logger),
	}
}

// Runner is the top-level engine handle: executor registration, graph
// execution, and run history access.
type Runner struct {
	registry  *registry.Adapter
	tracker   *engine.RunTracker
	scheduler *engine.Scheduler
	store     ports.RunStore
	logger    *slog.Logger
}

// New builds a Runner from cfg.
func New(cfg Config) (*Runner, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := registry.NewAdapter(logger)
	if cfg.Services != nil {
		if err := executors.RegisterBuiltins(reg, *cfg.Services); err != nil {
			return nil, err
		}
	}

	var store ports.RunStore
	if cfg.DataDir != "" {
		badgerStore, err := runstore.Open(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		store = badgerStore
	}

	tracker := engine.NewRunTracker(logger)

	return &Runner{
		registry:  reg,
		tracker:   tracker,
		scheduler: engine.NewScheduler(reg, tracker, store, logger),
		store:     store,
		logger:    logger,
	}, nil
}

// RegisterExecutor adds a node type to the engine. Registration is the
// only step needed to support a new type; the scheduler is unaffected.
func (r *Runner) RegisterExecutor(executor NodeExecutor) error {
	return r.registry.Register(executor)
}

// RunGraph executes the graph snapshot to completion or first failure
// and returns the finished run record. workflowID optionally ties the
// stored run to its owning workflow; it may be empty.
func (r *Runner) RunGraph(ctx context.Context, graph Graph, workflowID string) (*Run, error) {
	return r.scheduler.RunGraph(ctx, graph, workflowID)
}

// GetRun returns the tracked run snapshot for runID.
func (r *Runner) GetRun(runID string) (*Run, error) {
	return r.tracker.GetRun(runID)
}

// Runs returns all runs of this session, newest first.
func (r *Runner) Runs() []*Run {
	return r.tracker.Runs()
}

// History lists persisted runs, newest first, optionally filtered by
// owning workflow. Without a durable store it falls back to the
// session's tracked runs.
func (r *Runner) History(ctx context.Context, workflowID string) ([]*Run, error) {
	if r.store == nil {
		return r.tracker.Runs(), nil
	}
	return r.store.ListRuns(ctx, workflowID)
}

// RestoreOutputs rebuilds the node-output map of a prior run so the
// caller can repopulate canvas state without re-executing. The durable
// store is consulted first, then the in-memory tracker.
func (r *Runner) RestoreOutputs(ctx context.Context, runID string) (map[string]*string, error) {
	if r.store != nil {
		if run, err := r.store.GetRun(ctx, runID); err == nil {
			return run.OutputMap(), nil
		}
	}

	run, err := r.tracker.GetRun(runID)
	if err != nil {
		return nil, err
	}
	return run.OutputMap(), nil
}

// Close releases the durable store, if any.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}
