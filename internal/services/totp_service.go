package services

import (
	"context"
	"errors"

	"github.com/pquerna/otp/totp"

	"vyapar-backend/internal/auth"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

var (
	ErrInvalidTOTPCode = errors.New("invalid verification code")
	ErrTOTPNotSetup    = errors.New("two-factor authentication not set up")
)

// TOTPService manages time-based one-time-password 2FA for admin accounts
type TOTPService struct {
	users  *repositories.UserRepository
	audit  *repositories.AuditLogRepository
	jwt    *auth.JWTManager
	issuer string
}

func NewTOTPService(users *repositories.UserRepository, audit *repositories.AuditLogRepository, jwtManager *auth.JWTManager, issuer string) *TOTPService {
	return &TOTPService{users: users, audit: audit, jwt: jwtManager, issuer: issuer}
}

// SetupResponse carries the secret and provisioning URL for the
// authenticator app QR code
type SetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// Setup generates a new secret. 2FA stays off until the first code is
// verified, so a closed browser tab can't lock the account.
func (s *TOTPService) Setup(ctx context.Context, userID int) (*SetupResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.users.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}
	return &SetupResponse{Secret: key.Secret(), URL: key.URL()}, nil
}

// Enable verifies the first code against the pending secret and turns on 2FA
func (s *TOTPService) Enable(ctx context.Context, userID int, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return ErrTOTPNotSetup
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.users.EnableTOTP(ctx, userID)
}

// Disable turns off 2FA after verifying a current code
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return ErrTOTPNotSetup
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.users.DisableTOTP(ctx, userID)
}

// CompleteLogin exchanges a temp token plus a valid code for a session
func (s *TOTPService) CompleteLogin(ctx context.Context, tempToken, code, ipAddress, userAgent string) (*models.AuthResponse, error) {
	claims, err := s.jwt.ValidateTempToken(tempToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.TOTPEnabled {
		return nil, ErrTOTPNotSetup
	}
	if !totp.Validate(code, user.TOTPSecret) {
		s.audit.LogLogin(ctx, &user.ID, user.Email, false, ipAddress, userAgent)
		return nil, ErrInvalidTOTPCode
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.audit.LogLogin(ctx, &user.ID, user.Email, true, ipAddress, userAgent)
	return &models.AuthResponse{Token: token, User: user}, nil
}
