package runstore

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	json "github.com/goccy/go-json"

	"github.com/adityaraj1236/linqai/internal/domain"
)

const (
	runKeyPrefix      = "run:"
	workflowKeyPrefix = "workflow-run:"

	// maxStoredOutput bounds how much of a node output is persisted;
	// the live tracker record keeps the full value.
	maxStoredOutput = 2000

	binaryStripped = "[binary-stripped]"
)

// BadgerStore persists terminal runs to a BadgerDB database. It
// implements ports.RunStore: runs are stored sanitized (binary payloads
// redacted, outputs truncated) under their run id, with a secondary key
// per owning workflow for history listings.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open creates or opens a run store at dir. An empty dir opens an
// in-memory database, which tests use.
func Open(dir string, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{
		db:     db,
		logger: logger.With("component", "run-store"),
	}, nil
}

func (s *BadgerStore) SaveRun(ctx context.Context, run *domain.Run) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	sanitized := sanitizeRun(run)
	value, err := json.Marshal(sanitized)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(runKeyPrefix+run.ID), value); err != nil {
			return err
		}
		if run.WorkflowID != "" {
			indexKey := workflowKeyPrefix + run.WorkflowID + ":" + run.ID
			if err := txn.Set([]byte(indexKey), []byte(run.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("run saved",
		"run_id", run.ID,
		"workflow_id", run.WorkflowID,
		"status", run.Status)
	return nil
}

func (s *BadgerStore) GetRun(ctx context.Context, runID string) (*domain.Run, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var run domain.Run
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runKeyPrefix + runID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrRunNotFound
			}
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &run)
		})
	})
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (s *BadgerStore) ListRuns(ctx context.Context, workflowID string) ([]*domain.Run, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var ids []string
	if workflowID == "" {
		var err error
		ids, err = s.keysWithPrefix(runKeyPrefix, func(key string) string {
			return strings.TrimPrefix(key, runKeyPrefix)
		})
		if err != nil {
			return nil, err
		}
	} else {
		prefix := workflowKeyPrefix + workflowID + ":"
		var err error
		ids, err = s.keysWithPrefix(prefix, func(key string) string {
			return strings.TrimPrefix(key, prefix)
		})
		if err != nil {
			return nil, err
		}
	}

	runs := make([]*domain.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRunNotFound) {
				s.logger.Warn("dangling workflow run index", "run_id", id)
				continue
			}
			return nil, err
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

func (s *BadgerStore) DeleteRun(ctx context.Context, runID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(runKeyPrefix + runID)); err != nil {
			return err
		}
		if run.WorkflowID != "" {
			indexKey := workflowKeyPrefix + run.WorkflowID + ":" + runID
			if err := txn.Delete([]byte(indexKey)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *BadgerStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}
	return nil
}

func (s *BadgerStore) keysWithPrefix(prefix string, trim func(string) string) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, trim(string(it.Item().Key())))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// sanitizeRun prepares a run for durable storage: inline binary
// payloads in inputs are redacted and outputs are truncated, keeping
// history rows small while the canvas-facing snapshot stays intact.
func sanitizeRun(run *domain.Run) *domain.Run {
	sanitized := run.Clone()
	for i := range sanitized.NodeExecutions {
		exec := &sanitized.NodeExecutions[i]
		for handle, value := range exec.Inputs {
			if s, ok := value.(string); ok && isBinaryPayload(s) {
				exec.Inputs[handle] = binaryStripped
			}
		}
		if exec.Output != nil {
			if isBinaryPayload(*exec.Output) {
				out := binaryStripped
				exec.Output = &out
			} else if len(*exec.Output) > maxStoredOutput {
				out := (*exec.Output)[:maxStoredOutput]
				exec.Output = &out
			}
		}
	}
	return sanitized
}

func isBinaryPayload(s string) bool {
	return strings.HasPrefix(s, "data:") || strings.HasPrefix(s, "blob:")
}
