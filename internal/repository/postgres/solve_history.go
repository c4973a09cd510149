package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/repository"
)

// SolveHistoryRepository implements repository.SolveHistoryRepository for PostgreSQL.
type SolveHistoryRepository struct {
	db *sql.DB
}

// NewSolveHistoryRepository creates a new SolveHistoryRepository.
func NewSolveHistoryRepository(db *sql.DB) *SolveHistoryRepository {
	return &SolveHistoryRepository{db: db}
}

// Create persists a newly submitted solve run.
func (r *SolveHistoryRepository) Create(ctx context.Context, run *entity.SolveRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	issuesJSON, err := json.Marshal(run.FeasibilityIssues)
	if err != nil {
		return fmt.Errorf("failed to marshal feasibility issues: %w", err)
	}

	query := `
		INSERT INTO solve_runs
		(id, request_json, status, schedule_json, feasibility_issues, objective_value,
		 wall_time_seconds, error_message, created_at, created_by, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.RequestJSON,
		string(run.Status),
		run.ScheduleJSON,
		issuesJSON,
		run.ObjectiveValue,
		run.WallTimeSeconds,
		run.ErrorMessage,
		run.CreatedAt,
		run.CreatedBy,
		run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create solve run: %w", err)
	}

	return nil
}

// GetByID retrieves a solve run by ID.
func (r *SolveHistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SolveRun, error) {
	query := `
		SELECT id, request_json, status, schedule_json, feasibility_issues, objective_value,
		       wall_time_seconds, error_message, created_at, created_by, completed_at
		FROM solve_runs
		WHERE id = $1
	`

	run, err := scanSolveRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve run: %w", err)
	}
	return run, nil
}

// Update overwrites a solve run's outcome fields (status, schedule, stats).
func (r *SolveHistoryRepository) Update(ctx context.Context, run *entity.SolveRun) error {
	issuesJSON, err := json.Marshal(run.FeasibilityIssues)
	if err != nil {
		return fmt.Errorf("failed to marshal feasibility issues: %w", err)
	}

	query := `
		UPDATE solve_runs
		SET status = $2, schedule_json = $3, feasibility_issues = $4, objective_value = $5,
		    wall_time_seconds = $6, error_message = $7, completed_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		run.ID,
		string(run.Status),
		run.ScheduleJSON,
		issuesJSON,
		run.ObjectiveValue,
		run.WallTimeSeconds,
		run.ErrorMessage,
		run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update solve run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "SolveRun", ResourceID: run.ID.String()}
	}

	return nil
}

// ListRecent returns the most recently created solve runs, newest first.
func (r *SolveHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*entity.SolveRun, error) {
	query := `
		SELECT id, request_json, status, schedule_json, feasibility_issues, objective_value,
		       wall_time_seconds, error_message, created_at, created_by, completed_at
		FROM solve_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query solve runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.SolveRun
	for rows.Next() {
		run, err := scanSolveRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solve runs: %w", err)
	}

	return runs, nil
}

// Count returns the total number of persisted solve runs.
func (r *SolveHistoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solve_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count solve runs: %w", err)
	}
	return count, nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows, both of which expose Scan.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSolveRun(row rowScanner) (*entity.SolveRun, error) {
	run := &entity.SolveRun{}
	var status string
	var issuesJSON []byte

	err := row.Scan(
		&run.ID,
		&run.RequestJSON,
		&status,
		&run.ScheduleJSON,
		&issuesJSON,
		&run.ObjectiveValue,
		&run.WallTimeSeconds,
		&run.ErrorMessage,
		&run.CreatedAt,
		&run.CreatedBy,
		&run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = entity.SolveStatus(status)

	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &run.FeasibilityIssues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feasibility issues: %w", err)
		}
	}

	return run, nil
}
