// Package repository defines storage-agnostic persistence interfaces for
// solve runs, the one aggregate this system durably stores. Concrete
// backends live in postgres/ (production) and memory/ (tests).
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/schedcu/shiftsolver/internal/entity"
)

// SolveHistoryRepository stores submitted solve requests and their outcomes,
// letting a caller submit a run asynchronously and poll for completion.
type SolveHistoryRepository interface {
	Create(ctx context.Context, run *entity.SolveRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SolveRun, error)
	Update(ctx context.Context, run *entity.SolveRun) error
	ListRecent(ctx context.Context, limit int) ([]*entity.SolveRun, error)
	Count(ctx context.Context) (int64, error)
}

// NotFoundError represents a record not found error
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
	Field   string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
