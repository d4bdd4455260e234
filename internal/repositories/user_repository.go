package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, phone, password_hash, role, owner_id, is_active,
	COALESCE(totp_secret, ''), COALESCE(totp_enabled, FALSE), totp_verified_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.OwnerID, &u.IsActive, &u.TOTPSecret, &u.TOTPEnabled, &u.TOTPVerifiedAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a user. ownerID is nil for admins and the parent admin's
// id for workers.
func (r *UserRepository) Create(ctx context.Context, name, email, phone, passwordHash, role string, ownerID *int) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRow(ctx, query, name, email, phone, passwordHash, role, ownerID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(ctx, query, id))
}

// ListWorkers returns all workers under an admin account
func (r *UserRepository) ListWorkers(ctx context.Context, ownerID int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE owner_id = $1 AND role = 'worker' ORDER BY name`

	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, u)
	}
	return workers, rows.Err()
}

// UpdateWorker updates a worker's profile. passwordHash is skipped when empty.
func (r *UserRepository) UpdateWorker(ctx context.Context, id, ownerID int, name, email, phone, passwordHash string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3,
		    password_hash = CASE WHEN $4 = '' THEN password_hash ELSE $4 END,
		    updated_at = NOW()
		WHERE id = $5 AND owner_id = $6 AND role = 'worker'
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRow(ctx, query, name, email, phone, passwordHash, id, ownerID))
}

// SetWorkerActive enables or disables a worker account. Disabled workers
// fail login but keep their permission matrix.
func (r *UserRepository) SetWorkerActive(ctx context.Context, id, ownerID int, active bool) (*models.User, error) {
	query := `
		UPDATE users
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3 AND role = 'worker'
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRow(ctx, query, active, id, ownerID))
}

// DeleteWorker removes a worker and cascades its permission rows
func (r *UserRepository) DeleteWorker(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND owner_id = $2 AND role = 'worker'`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// SetTOTPSecret stores a pending (not yet verified) TOTP secret
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret = $1, totp_enabled = FALSE, updated_at = NOW() WHERE id = $2`,
		secret, userID)
	return err
}

// EnableTOTP marks the secret verified and turns on 2FA
func (r *UserRepository) EnableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled = TRUE, totp_verified_at = NOW(), updated_at = NOW() WHERE id = $1`,
		userID)
	return err
}

// DisableTOTP clears 2FA state
func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, totp_verified_at = NULL, updated_at = NOW() WHERE id = $1`,
		userID)
	return err
}
