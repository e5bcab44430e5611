package service

import (
	"testing"

	"orderhub/internal/domain"
	"orderhub/internal/models"
	"orderhub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) (*ProfileService, *repository.UserRepository, *repository.BusinessRepository) {
	users := repository.NewUserRepository(db)
	businesses := repository.NewBusinessRepository(db)
	return NewProfileService(users, businesses), users, businesses
}

func seedUser(t *testing.T, users *repository.UserRepository, email, role string) *models.User {
	t.Helper()
	u := &models.User{
		Email:           email,
		Role:            role,
		Status:          domain.AccountEnabled,
		CanCreateOrders: true,
	}
	require.NoError(t, users.Create(u))
	return u
}

func TestResolveAdminProfileIsVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc, users, _ := newProfileService(db)
	u := seedUser(t, users, "admin@orderhub.local", domain.RoleAdmin)

	p, err := svc.Resolve(u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	assert.Equal(t, "admin@orderhub.local", p.Email)
	assert.False(t, p.OnboardingRequired)
	assert.Empty(t, p.TenantPath)
	assert.Empty(t, p.BusinessName)
}

func TestResolveMergesBusinessRecord(t *testing.T) {
	db := newTestDB(t)
	svc, users, businesses := newProfileService(db)
	u := seedUser(t, users, "owner@gmail.com", domain.RoleBusiness)

	b := &models.Business{
		OwnerID:           u.ID,
		Email:             u.Email,
		BusinessName:      "Sweet Cakes",
		OwnerName:         "Alice",
		PlanTier:          domain.PlanSilver,
		CanAddOrder:       true,
		CanAddCustomer:    true,
		MaxOrderNumber:    300,
		MaxCustomerNumber: 300,
	}
	require.NoError(t, businesses.Create(b))

	p, err := svc.Resolve(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sweet Cakes", p.BusinessName)
	assert.Equal(t, domain.PlanSilver, p.PlanTier)
	assert.Equal(t, b.RootPath(), p.TenantPath)
	assert.True(t, p.Capabilities.CanAddOrder)
	assert.Equal(t, 300, p.Capabilities.MaxOrderNumber)
}

// The account-level flag wins over the plan snapshot: when an admin turns
// off order creation the merged capability goes false even though the
// business row still says true.
func TestResolveAccountFlagOverridesPlanSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc, users, businesses := newProfileService(db)
	u := seedUser(t, users, "owner@gmail.com", domain.RoleBusiness)
	require.NoError(t, businesses.Create(&models.Business{
		OwnerID:        u.ID,
		Email:          u.Email,
		BusinessName:   "Sweet Cakes",
		CanAddOrder:    true,
		CanAddCustomer: true,
	}))

	require.NoError(t, users.UpdateFields(u.ID, map[string]interface{}{"can_create_orders": false}))

	p, err := svc.Resolve(u.ID)
	require.NoError(t, err)
	assert.False(t, p.Capabilities.CanAddOrder)
	assert.True(t, p.Capabilities.CanAddCustomer)
}

func TestResolveMissingBusinessRequiresOnboarding(t *testing.T) {
	db := newTestDB(t)
	svc, users, _ := newProfileService(db)
	u := seedUser(t, users, "fresh@gmail.com", domain.RoleBusiness)

	p, err := svc.Resolve(u.ID)
	require.NoError(t, err)
	assert.True(t, p.OnboardingRequired)
	assert.Empty(t, p.TenantPath)
	assert.Equal(t, RestrictedCapabilities(), p.Capabilities)
}

func TestResolveDisabledAccountFailsClosed(t *testing.T) {
	db := newTestDB(t)
	svc, users, _ := newProfileService(db)
	u := seedUser(t, users, "owner@gmail.com", domain.RoleBusiness)
	require.NoError(t, users.UpdateFields(u.ID, map[string]interface{}{"status": domain.AccountDisabled}))

	_, err := svc.Resolve(u.ID)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestCompleteOnboardingAppliesPlanSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc, users, _ := newProfileService(db)
	u := seedUser(t, users, "owner@gmail.com", domain.RoleBusiness)

	plan := &models.PlanDefinition{
		Name:              domain.PlanLite,
		Price:             decimal.Zero,
		CanAddOrder:       true,
		CanAddCustomer:    true,
		MaxOrderNumber:    50,
		MaxCustomerNumber: 50,
	}
	p, err := svc.CompleteOnboarding(u.ID, "Sweet Cakes", "Alice", "+1555", "Main St", "cakes", plan)
	require.NoError(t, err)
	assert.False(t, p.OnboardingRequired)
	assert.Equal(t, domain.PlanLite, p.PlanTier)
	assert.Equal(t, 50, p.Capabilities.MaxOrderNumber)
	assert.NotEmpty(t, p.TenantPath)

	// A second call is a no-op returning the existing profile.
	again, err := svc.CompleteOnboarding(u.ID, "Other Name", "", "", "", "", plan)
	require.NoError(t, err)
	assert.Equal(t, "Sweet Cakes", again.BusinessName)
}
