package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
)

var _ port.ImportRuns = ImportRunsRepository{}

type ImportRunsRepository struct {
	sqldb sqldb
}

func NewImportRunsRepository(sqldb sqldb) ImportRunsRepository {
	return ImportRunsRepository{sqldb}
}

func (r ImportRunsRepository) CreateRun(
	ctx context.Context, run domain.ImportRun,
) error {
	const op = "ImportRunsRepository.CreateRun"

	query := `
		INSERT INTO import_runs (id, filename, file_size, status, created_at)
		VALUES ($1, $2, $3, $4, $5);`

	_, err := r.sqldb.ExecContext(ctx, query,
		run.ID, run.Filename, run.FileSize, run.Status, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ImportRunsRepository) FinishRun(
	ctx context.Context, run domain.ImportRun,
) error {
	const op = "ImportRunsRepository.FinishRun"

	query := `
		UPDATE import_runs SET
			status = $2,
			success_count = $3,
			error_count = $4,
			error_message = $5,
			completed_at = $6
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query,
		run.ID, run.Status, run.SuccessCount, run.ErrorCount,
		run.ErrorMessage, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ImportRunsRepository) RunByID(
	ctx context.Context, id string,
) (domain.ImportRun, error) {
	const op = "ImportRunsRepository.RunByID"

	query := `
		SELECT id, filename, file_size, status,
			success_count, error_count, error_message,
			created_at, completed_at
		FROM import_runs WHERE id = $1;`

	var run domain.ImportRun
	var completedAt sql.NullTime
	err := r.sqldb.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Filename, &run.FileSize, &run.Status,
		&run.SuccessCount, &run.ErrorCount, &run.ErrorMessage,
		&run.CreatedAt, &completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ImportRun{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("%s: %w", op, err)
	}
	run.CompletedAt = completedAt.Time
	return run, nil
}

// Runs pages stored runs newest first and reports the overall count.
func (r ImportRunsRepository) Runs(
	ctx context.Context, limit, offset int,
) ([]domain.ImportRun, int, error) {
	const op = "ImportRunsRepository.Runs"

	query := `
		SELECT id, filename, file_size, status,
			success_count, error_count, error_message,
			created_at, completed_at,
			count(*) OVER ()
		FROM import_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`

	rows, err := r.sqldb.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	var total int
	for rows.Next() {
		var run domain.ImportRun
		var completedAt sql.NullTime
		err := rows.Scan(
			&run.ID, &run.Filename, &run.FileSize, &run.Status,
			&run.SuccessCount, &run.ErrorCount, &run.ErrorMessage,
			&run.CreatedAt, &completedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		run.CompletedAt = completedAt.Time
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return runs, total, nil
}
