package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

// AuditLogRepository persists admin action and login trails
type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// LogAdminAction records a privileged action (worker create/delete,
// permission change, setting update). Failures are returned but callers
// treat them as non-fatal.
func (r *AuditLogRepository) LogAdminAction(ctx context.Context, adminID int, adminName, action, targetType string, targetID *int, details string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO admin_action_logs (admin_user_id, admin_name, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		adminID, adminName, action, targetType, targetID, details)
	if err != nil {
		return fmt.Errorf("log admin action: %w", err)
	}
	return nil
}

// LogLogin records a login attempt, successful or not
func (r *AuditLogRepository) LogLogin(ctx context.Context, userID *int, email string, success bool, ipAddress, userAgent string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO login_logs (user_id, email, success, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)`,
		userID, email, success, ipAddress, userAgent)
	if err != nil {
		return fmt.Errorf("log login: %w", err)
	}
	return nil
}

// ListAdminActions returns recent privileged actions, newest first
func (r *AuditLogRepository) ListAdminActions(ctx context.Context, adminID, limit int) ([]*models.AdminActionLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, admin_user_id, admin_name, action, target_type, target_id, details, created_at
		FROM admin_action_logs
		WHERE admin_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, adminID, limit)
	if err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}
	defer rows.Close()

	var logs []*models.AdminActionLog
	for rows.Next() {
		var l models.AdminActionLog
		if err := rows.Scan(&l.ID, &l.AdminUserID, &l.AdminName, &l.Action,
			&l.TargetType, &l.TargetID, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
