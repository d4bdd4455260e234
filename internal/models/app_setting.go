package models

import "time"

type AppSetting struct {
	ID              int       `json:"id"`
	OwnerID         int       `json:"owner_id"`
	SettingKey      string    `json:"setting_key"`
	SettingValue    string    `json:"setting_value"`
	Description     string    `json:"description"`
	UpdatedAt       time.Time `json:"updated_at"`
	UpdatedByUserID int       `json:"updated_by_user_id"`
}

// Well-known setting keys
const (
	SettingBusinessName = "business_name"
	SettingCurrency     = "currency"
	SettingLogoURL      = "logo_url"
	SettingAddress      = "address"
	SettingGSTNumber    = "gst_number"
)

type UpdateSettingRequest struct {
	SettingValue string `json:"setting_value"`
}
