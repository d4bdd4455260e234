package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type WorkerPermissionRepository struct {
	DB *pgxpool.Pool
}

func NewWorkerPermissionRepository(db *pgxpool.Pool) *WorkerPermissionRepository {
	return &WorkerPermissionRepository{DB: db}
}

// Get returns the permission row for one (worker, feature) pair.
// ErrNotFound means the worker has no access to that feature at all.
func (r *WorkerPermissionRepository) Get(ctx context.Context, workerID int, feature string) (*models.WorkerPermission, error) {
	var p models.WorkerPermission
	err := r.DB.QueryRow(ctx, `
		SELECT id, worker_id, feature, can_view, can_create, can_edit, can_delete, updated_at
		FROM worker_permissions
		WHERE worker_id = $1 AND feature = $2`,
		workerID, feature,
	).Scan(&p.ID, &p.WorkerID, &p.Feature, &p.CanView, &p.CanCreate, &p.CanEdit, &p.CanDelete, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByWorker returns the worker's whole permission matrix
func (r *WorkerPermissionRepository) ListByWorker(ctx context.Context, workerID int) ([]*models.WorkerPermission, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, worker_id, feature, can_view, can_create, can_edit, can_delete, updated_at
		FROM worker_permissions
		WHERE worker_id = $1
		ORDER BY feature`, workerID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []*models.WorkerPermission
	for rows.Next() {
		var p models.WorkerPermission
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.Feature, &p.CanView, &p.CanCreate,
			&p.CanEdit, &p.CanDelete, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, &p)
	}
	return perms, rows.Err()
}

// ReplaceAll swaps the worker's whole matrix in one transaction so a
// permission read never sees a half-applied update.
func (r *WorkerPermissionRepository) ReplaceAll(ctx context.Context, workerID int, perms []models.WorkerPermission) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin permissions tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM worker_permissions WHERE worker_id = $1`, workerID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}

	for _, p := range perms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO worker_permissions (worker_id, feature, can_view, can_create, can_edit, can_delete)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			workerID, p.Feature, p.CanView, p.CanCreate, p.CanEdit, p.CanDelete); err != nil {
			return fmt.Errorf("insert permission %s: %w", p.Feature, err)
		}
	}

	return tx.Commit(ctx)
}
