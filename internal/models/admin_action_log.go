package models

import "time"

// AdminActionLog records sensitive admin operations for audit
type AdminActionLog struct {
	ID          int       `json:"id"`
	AdminUserID int       `json:"admin_user_id"`
	AdminName   string    `json:"admin_name"`
	Action      string    `json:"action"`
	TargetType  string    `json:"target_type"`
	TargetID    *int      `json:"target_id"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}
