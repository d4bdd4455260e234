package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

// fakePermissionStore serves a fixed matrix; features without a row return
// ErrNotFound the way the real repository does.
type fakePermissionStore struct {
	rows map[string]*models.WorkerPermission
}

func (f *fakePermissionStore) Get(ctx context.Context, workerID int, feature string) (*models.WorkerPermission, error) {
	if p, ok := f.rows[feature]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePermissionStore) ListByWorker(ctx context.Context, workerID int) ([]*models.WorkerPermission, error) {
	var perms []*models.WorkerPermission
	for _, p := range f.rows {
		perms = append(perms, p)
	}
	return perms, nil
}

func (f *fakePermissionStore) ReplaceAll(ctx context.Context, workerID int, perms []models.WorkerPermission) error {
	return nil
}

func TestCanDeniesWorkerWithoutMatrixRow(t *testing.T) {
	s := NewPermissionService(&fakePermissionStore{}, nil, nil)

	for _, feature := range models.AllFeatures {
		for _, action := range []string{models.ActionView, models.ActionCreate, models.ActionEdit, models.ActionDelete} {
			ok, err := s.Can(context.Background(), 7, models.RoleWorker, feature, action)
			require.NoError(t, err)
			require.False(t, ok, "no matrix row must deny %s/%s", feature, action)
		}
	}
}

func TestCanWorkerFollowsStoredRow(t *testing.T) {
	store := &fakePermissionStore{rows: map[string]*models.WorkerPermission{
		models.FeatureCredits: {WorkerID: 7, Feature: models.FeatureCredits, CanView: true, CanEdit: true},
	}}
	s := NewPermissionService(store, nil, nil)

	ok, err := s.Can(context.Background(), 7, models.RoleWorker, models.FeatureCredits, models.ActionView)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Can(context.Background(), 7, models.RoleWorker, models.FeatureCredits, models.ActionDelete)
	require.NoError(t, err)
	require.False(t, ok)

	// A feature with no row denies even when others are granted
	ok, err = s.Can(context.Background(), 7, models.RoleWorker, models.FeatureSales, models.ActionView)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCanAdminBypassesMatrix(t *testing.T) {
	// Admins never reach the matrix lookup, so no repositories are needed
	s := NewPermissionService(nil, nil, nil)

	for _, feature := range models.AllFeatures {
		for _, action := range []string{models.ActionView, models.ActionCreate, models.ActionEdit, models.ActionDelete} {
			ok, err := s.Can(context.Background(), 1, models.RoleAdmin, feature, action)
			require.NoError(t, err)
			require.True(t, ok, "admin must pass %s/%s", feature, action)
		}
	}
}
