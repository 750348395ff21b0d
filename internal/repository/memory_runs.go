package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// MemoryRunsRepo supports run bookkeeping when DB is disabled.
// Runs only live as long as the process; good enough for one-shot CLI usage.
type MemoryRunsRepo struct {
	mu   sync.RWMutex
	runs map[string]domain.GenerationRun // runID -> run
}

func NewMemoryRunsRepo() *MemoryRunsRepo {
	return &MemoryRunsRepo{
		runs: map[string]domain.GenerationRun{},
	}
}

var _ RunsRepository = (*MemoryRunsRepo)(nil)

func (r *MemoryRunsRepo) RecordRun(_ context.Context, run *domain.GenerationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.RunID] = *run
	return nil
}

func (r *MemoryRunsRepo) GetRun(_ context.Context, runID string) (*domain.GenerationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[runID]
	if !ok {
		return nil, fmt.Errorf("generation run not found: %s", runID)
	}
	return &run, nil
}

func (r *MemoryRunsRepo) ListRuns(_ context.Context, limit int) ([]*domain.GenerationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = defaultListLimit
	}

	all := make([]*domain.GenerationRun, 0, len(r.runs))
	for id := range r.runs {
		run := r.runs[id]
		all = append(all, &run)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
