package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vyapar-backend/internal/config"
	"vyapar-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "vyapar-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(testConfig())

	admin := &models.User{ID: 1, Email: "owner@shop.in", Role: models.RoleAdmin}
	token, err := m.GenerateToken(admin)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.Equal(t, 1, claims.OwnerID, "admins are their own scope")
}

func TestWorkerTokenCarriesParentScope(t *testing.T) {
	m := NewJWTManager(testConfig())

	parent := 1
	worker := &models.User{ID: 5, Email: "clerk@shop.in", Role: models.RoleWorker, OwnerID: &parent}
	token, err := m.GenerateToken(worker)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, 1, claims.OwnerID, "workers operate in the parent admin's scope")
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	require.Error(t, err)
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	m := NewJWTManager(testConfig())
	user := &models.User{ID: 2, Email: "owner@shop.in", Role: models.RoleAdmin}

	tempToken, err := m.GenerateTempToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateTempToken(tempToken)
	require.NoError(t, err)
	require.Equal(t, 2, claims.UserID)
	require.Equal(t, "2fa_pending", claims.Type)

	// A session token must not pass temp validation
	session, err := m.GenerateToken(user)
	require.NoError(t, err)
	_, err = m.ValidateTempToken(session)
	require.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword(hash, "s3cret-pass"))
	require.False(t, VerifyPassword(hash, "wrong"))
}
