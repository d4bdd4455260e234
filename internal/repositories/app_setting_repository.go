package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type AppSettingRepository struct {
	DB *pgxpool.Pool
}

func NewAppSettingRepository(db *pgxpool.Pool) *AppSettingRepository {
	return &AppSettingRepository{DB: db}
}

func (r *AppSettingRepository) Get(ctx context.Context, ownerID int, key string) (*models.AppSetting, error) {
	var s models.AppSetting
	err := r.DB.QueryRow(ctx, `
		SELECT id, owner_id, setting_key, setting_value, COALESCE(description, ''), updated_at, COALESCE(updated_by_user_id, 0)
		FROM app_settings
		WHERE owner_id = $1 AND setting_key = $2`,
		ownerID, key,
	).Scan(&s.ID, &s.OwnerID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt, &s.UpdatedByUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *AppSettingRepository) List(ctx context.Context, ownerID int) ([]*models.AppSetting, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, owner_id, setting_key, setting_value, COALESCE(description, ''), updated_at, COALESCE(updated_by_user_id, 0)
		FROM app_settings
		WHERE owner_id = $1
		ORDER BY setting_key`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []*models.AppSetting
	for rows.Next() {
		var s models.AppSetting
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.SettingKey, &s.SettingValue,
			&s.Description, &s.UpdatedAt, &s.UpdatedByUserID); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

// Upsert writes a setting value, creating the row on first write
func (r *AppSettingRepository) Upsert(ctx context.Context, ownerID int, key, value string, updatedBy int) (*models.AppSetting, error) {
	var s models.AppSetting
	err := r.DB.QueryRow(ctx, `
		INSERT INTO app_settings (owner_id, setting_key, setting_value, updated_by_user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value,
		    updated_by_user_id = EXCLUDED.updated_by_user_id,
		    updated_at = NOW()
		RETURNING id, owner_id, setting_key, setting_value, COALESCE(description, ''), updated_at, COALESCE(updated_by_user_id, 0)`,
		ownerID, key, value, updatedBy,
	).Scan(&s.ID, &s.OwnerID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt, &s.UpdatedByUserID)
	if err != nil {
		return nil, fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return &s, nil
}
