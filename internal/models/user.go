package models

import "time"

type User struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	PasswordHash   string     `json:"-"` // Never expose in JSON
	Role           string     `json:"role"`     // admin or worker
	OwnerID        *int       `json:"owner_id"` // NULL for admins, parent admin for workers
	IsActive       bool       `json:"is_active"`
	TOTPSecret     string     `json:"-"`
	TOTPEnabled    bool       `json:"totp_enabled"`
	TOTPVerifiedAt *time.Time `json:"totp_verified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// Scope returns the owner account id all of this user's data lives under:
// the user's own id for admins, the parent admin's id for workers.
func (u *User) Scope() int {
	if u.OwnerID != nil {
		return *u.OwnerID
	}
	return u.ID
}

// SignupRequest represents the request body for admin signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TwoFactorPendingResponse is returned when the account has TOTP enabled
// and the login must be completed with a code.
type TwoFactorPendingResponse struct {
	RequiresTOTP bool   `json:"requires_totp"`
	TempToken    string `json:"temp_token"`
}

// CreateWorkerRequest represents the request body for creating a worker
type CreateWorkerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateWorkerRequest represents the request body for updating a worker
type UpdateWorkerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"` // Optional
}
