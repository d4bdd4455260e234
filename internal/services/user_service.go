package services

import (
	"context"
	"errors"
	"strings"

	"vyapar-backend/internal/auth"
	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// UserService handles signup, login and worker account management
type UserService struct {
	users *repositories.UserRepository
	perms *repositories.WorkerPermissionRepository
	audit *repositories.AuditLogRepository
	jwt   *auth.JWTManager
}

func NewUserService(
	users *repositories.UserRepository,
	perms *repositories.WorkerPermissionRepository,
	audit *repositories.AuditLogRepository,
	jwtManager *auth.JWTManager,
) *UserService {
	return &UserService{users: users, perms: perms, audit: audit, jwt: jwtManager}
}

// Signup registers a new admin account
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 || strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Name, email, req.Phone, hash, models.RoleAdmin, nil)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// LoginResult carries either a session or a pending 2FA challenge
type LoginResult struct {
	Auth         *models.AuthResponse
	TwoFactor    *models.TwoFactorPendingResponse
	RequiresTOTP bool
}

// Login authenticates a user. Accounts with TOTP enabled get a temp token
// instead of a session; the login completes at the verify endpoint.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.audit.LogLogin(ctx, nil, email, false, ipAddress, userAgent)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Cache hit skips the bcrypt comparison
	cachedID, hit := cache.GetCachedAuth(ctx, email, req.Password)
	if !hit || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			s.audit.LogLogin(ctx, &user.ID, email, false, ipAddress, userAgent)
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password, user.ID)
	}

	if !user.IsActive {
		s.audit.LogLogin(ctx, &user.ID, email, false, ipAddress, userAgent)
		return nil, ErrAccountDisabled
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwt.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			RequiresTOTP: true,
			TwoFactor:    &models.TwoFactorPendingResponse{RequiresTOTP: true, TempToken: tempToken},
		}, nil
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.audit.LogLogin(ctx, &user.ID, email, true, ipAddress, userAgent)
	return &LoginResult{Auth: &models.AuthResponse{Token: token, User: user}}, nil
}

// CreateWorker adds a worker under the admin's account. Workers start with
// an empty permission matrix, which denies everything.
func (s *UserService) CreateWorker(ctx context.Context, adminID, adminScope int, req *models.CreateWorkerRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 || strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	worker, err := s.users.Create(ctx, req.Name, email, req.Phone, hash, models.RoleWorker, &adminScope)
	if err != nil {
		return nil, err
	}

	if admin, err := s.users.GetByID(ctx, adminID); err == nil {
		s.audit.LogAdminAction(ctx, adminID, admin.Name, "create_worker", "worker", &worker.ID, worker.Email)
	}
	return worker, nil
}

func (s *UserService) ListWorkers(ctx context.Context, adminScope int) ([]*models.User, error) {
	return s.users.ListWorkers(ctx, adminScope)
}

func (s *UserService) UpdateWorker(ctx context.Context, workerID, adminScope int, req *models.UpdateWorkerRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	hash := ""
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, ErrValidation
		}
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}
	return s.users.UpdateWorker(ctx, workerID, adminScope, req.Name, email, req.Phone, hash)
}

// SetWorkerActive toggles a worker account. Login re-reads is_active from
// the database even on an auth cache hit, so the change applies immediately.
func (s *UserService) SetWorkerActive(ctx context.Context, adminID, adminScope, workerID int, active bool) (*models.User, error) {
	worker, err := s.users.SetWorkerActive(ctx, workerID, adminScope, active)
	if err != nil {
		return nil, err
	}

	action := "disable_worker"
	if active {
		action = "enable_worker"
	}
	if admin, err := s.users.GetByID(ctx, adminID); err == nil {
		s.audit.LogAdminAction(ctx, adminID, admin.Name, action, "worker", &workerID, "")
	}
	return worker, nil
}

// DeleteWorker removes a worker. Permission rows go with it via cascade.
func (s *UserService) DeleteWorker(ctx context.Context, adminID, adminScope, workerID int) error {
	if err := s.users.DeleteWorker(ctx, workerID, adminScope); err != nil {
		return err
	}
	cache.InvalidatePermissionCaches(ctx)

	if admin, err := s.users.GetByID(ctx, adminID); err == nil {
		s.audit.LogAdminAction(ctx, adminID, admin.Name, "delete_worker", "worker", &workerID, "")
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
