package ports

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
)

// RunStore is the durable side of the run tracker. Saving happens after
// a run reaches a terminal status and is best-effort: a save failure is
// logged by the caller but never alters the computed run outcome.
type RunStore interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, runID string) (*domain.Run, error)

	// ListRuns returns stored runs newest first. An empty workflowID
	// lists runs across all workflows.
	ListRuns(ctx context.Context, workflowID string) ([]*domain.Run, error)

	DeleteRun(ctx context.Context, runID string) error
	Close() error
}
