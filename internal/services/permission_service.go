package services

import (
	"context"
	"errors"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

// PermissionStore is the slice of the worker permission repository the
// service reads and writes. Tests substitute a fake.
type PermissionStore interface {
	Get(ctx context.Context, workerID int, feature string) (*models.WorkerPermission, error)
	ListByWorker(ctx context.Context, workerID int) ([]*models.WorkerPermission, error)
	ReplaceAll(ctx context.Context, workerID int, perms []models.WorkerPermission) error
}

// PermissionService answers "may this user do this" from the worker
// permission matrix.
type PermissionService struct {
	perms PermissionStore
	users *repositories.UserRepository
	audit *repositories.AuditLogRepository
}

func NewPermissionService(
	perms PermissionStore,
	users *repositories.UserRepository,
	audit *repositories.AuditLogRepository,
) *PermissionService {
	return &PermissionService{perms: perms, users: users, audit: audit}
}

// Can implements the permission gate. Admins pass every check. Workers are
// looked up in the matrix; a missing row denies everything for that feature.
func (s *PermissionService) Can(ctx context.Context, userID int, role, feature, action string) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}

	perm, err := s.perms.Get(ctx, userID, feature)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return perm.Allows(action), nil
}

// MatrixFor returns the worker's full matrix padded with deny rows for
// features that have no stored row, so clients always see every feature.
func (s *PermissionService) MatrixFor(ctx context.Context, workerID int) ([]models.WorkerPermission, error) {
	stored, err := s.perms.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	byFeature := make(map[string]*models.WorkerPermission, len(stored))
	for _, p := range stored {
		byFeature[p.Feature] = p
	}

	matrix := make([]models.WorkerPermission, 0, len(models.AllFeatures))
	for _, feature := range models.AllFeatures {
		if p, ok := byFeature[feature]; ok {
			matrix = append(matrix, *p)
		} else {
			matrix = append(matrix, models.WorkerPermission{WorkerID: workerID, Feature: feature})
		}
	}
	return matrix, nil
}

// SelfMatrix returns the calling user's own matrix so clients can decide
// which features to show. Admins get an all-allow matrix.
func (s *PermissionService) SelfMatrix(ctx context.Context, userID int, role string) ([]models.WorkerPermission, error) {
	if role != models.RoleAdmin {
		return s.MatrixFor(ctx, userID)
	}

	matrix := make([]models.WorkerPermission, 0, len(models.AllFeatures))
	for _, feature := range models.AllFeatures {
		matrix = append(matrix, models.WorkerPermission{
			WorkerID:  userID,
			Feature:   feature,
			CanView:   true,
			CanCreate: true,
			CanEdit:   true,
			CanDelete: true,
		})
	}
	return matrix, nil
}

// UpdateMatrix replaces a worker's permissions. The worker must belong to
// the calling admin's account.
func (s *PermissionService) UpdateMatrix(ctx context.Context, adminID, adminScope, workerID int, perms []models.WorkerPermission) error {
	worker, err := s.users.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if worker.Role != models.RoleWorker || worker.Scope() != adminScope {
		return repositories.ErrNotFound
	}

	for i := range perms {
		perms[i].WorkerID = workerID
	}
	if err := s.perms.ReplaceAll(ctx, workerID, perms); err != nil {
		return err
	}

	admin, err := s.users.GetByID(ctx, adminID)
	if err == nil {
		s.audit.LogAdminAction(ctx, adminID, admin.Name, "update_permissions", "worker", &workerID, "")
	}
	return nil
}
