// Package memory provides in-memory repository implementations for tests
// and for running the server without a PostgreSQL instance.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/repository"
)

// SolveHistoryRepository is an in-memory implementation for testing.
type SolveHistoryRepository struct {
	mu         sync.RWMutex
	runs       map[uuid.UUID]*entity.SolveRun
	queryCount int
}

// NewSolveHistoryRepository creates a new in-memory solve history repository.
func NewSolveHistoryRepository() *SolveHistoryRepository {
	return &SolveHistoryRepository{
		runs: make(map[uuid.UUID]*entity.SolveRun),
	}
}

// Create stores a new solve run.
func (r *SolveHistoryRepository) Create(ctx context.Context, run *entity.SolveRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if run == nil {
		return &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: "nil"}
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a solve run by ID.
func (r *SolveHistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SolveRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	run, exists := r.runs[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: id.String()}
	}
	return run, nil
}

// Update overwrites a solve run's outcome fields.
func (r *SolveHistoryRepository) Update(ctx context.Context, run *entity.SolveRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if run == nil {
		return &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: "nil"}
	}
	if _, exists := r.runs[run.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: run.ID.String()}
	}

	r.runs[run.ID] = run
	return nil
}

// ListRecent returns up to limit solve runs, newest first.
func (r *SolveHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*entity.SolveRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	all := make([]*entity.SolveRun, 0, len(r.runs))
	for _, run := range r.runs {
		all = append(all, run)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the total number of stored solve runs.
func (r *SolveHistoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.runs)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *SolveHistoryRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *SolveHistoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = make(map[uuid.UUID]*entity.SolveRun)
	r.queryCount = 0
}
