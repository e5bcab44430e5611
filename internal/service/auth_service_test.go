package service

import (
	"testing"
	"time"

	"orderhub/config"
	"orderhub/internal/auth"
	"orderhub/internal/domain"
	"orderhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "orderhub-test",
		},
	}
}

func newAuthService(db *gorm.DB) (*AuthService, *repository.UserRepository) {
	users := repository.NewUserRepository(db)
	return NewAuthService(testConfig(), users), users
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)

	u, access, refresh, err := svc.Register("owner@gmail.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBusiness, u.Role)
	assert.Equal(t, domain.AccountEnabled, u.Status)
	assert.True(t, u.CanCreateOrders)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	_, _, _, err = svc.Register("owner@gmail.com", "other")
	assert.ErrorIs(t, err, ErrEmailExists)

	got, _, _, err := svc.Login("owner@gmail.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, _, _, err = svc.Login("owner@gmail.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("nobody@gmail.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginDisabledAccountFailsClosed(t *testing.T) {
	db := newTestDB(t)
	svc, users := newAuthService(db)

	u, _, _, err := svc.Register("owner@gmail.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, users.UpdateFields(u.ID, map[string]interface{}{"status": domain.AccountDisabled}))

	// Wrong password still reads as bad credentials, not as disabled.
	_, _, _, err = svc.Login("owner@gmail.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = svc.Login("owner@gmail.com", "hunter22")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)

	u, _, _, err := svc.Register("owner@gmail.com", "hunter22")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "next-pass"), ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(u.ID, "hunter22", "next-pass"))

	_, _, _, err = svc.Login("owner@gmail.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("owner@gmail.com", "next-pass")
	assert.NoError(t, err)
}

func TestRefreshTokenFlow(t *testing.T) {
	db := newTestDB(t)
	svc, users := newAuthService(db)

	u, _, refresh, err := svc.Register("owner@gmail.com", "hunter22")
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)
	claims, err := auth.ParseAccessToken(&testConfig().JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, users.UpdateFields(u.ID, map[string]interface{}{"status": domain.AccountDisabled}))
	_, err = svc.Refresh(refresh)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}
