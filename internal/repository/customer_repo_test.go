package repository

import (
	"testing"

	"orderhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateIdempotentOnPhone(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))

	first, err := repo.Create(&models.Customer{
		TenantPath: testTenant, OwnerID: testOwner,
		Name: "Alice", Phone: "+1555000111",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.DocID)

	second, err := repo.Create(&models.Customer{
		TenantPath: testTenant, OwnerID: testOwner,
		Name: "Alice Again", Phone: "+1555000111",
	})
	require.NoError(t, err)
	assert.Equal(t, first.DocID, second.DocID)
	assert.Equal(t, "Alice", second.Name) // existing record returned unchanged

	list, err := repo.List(testTenant, testOwner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerCreateSamePhoneDifferentTenant(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))

	a, err := repo.Create(&models.Customer{
		TenantPath: testTenant, OwnerID: testOwner, Name: "A", Phone: "555",
	})
	require.NoError(t, err)
	b, err := repo.Create(&models.Customer{
		TenantPath: "OtherShopotherexamplecom", OwnerID: 2, Name: "B", Phone: "555",
	})
	require.NoError(t, err)
	assert.NotEqual(t, a.DocID, b.DocID)
}

func TestCustomerCreateRequiresTenantPath(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	_, err := repo.Create(&models.Customer{OwnerID: testOwner, Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, ErrNoTenantPath)
}

func TestCustomerPartialUpdate(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	c, err := repo.Create(&models.Customer{
		TenantPath: testTenant, OwnerID: testOwner,
		Name: "Alice", Phone: "111", Comment: "regular",
	})
	require.NoError(t, err)

	err = repo.Update(testTenant, c.DocID, map[string]interface{}{"rating": 4})
	require.NoError(t, err)

	got, err := repo.GetByDocID(testTenant, c.DocID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "regular", got.Comment) // untouched fields survive
	assert.Equal(t, "Alice", got.Name)
}

func TestCustomerDeleteHard(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	c, err := repo.Create(&models.Customer{
		TenantPath: testTenant, OwnerID: testOwner, Name: "Gone", Phone: "999",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(testTenant, c.DocID))
	_, err = repo.GetByDocID(testTenant, c.DocID)
	assert.Error(t, err)

	// Deleting again reports not found, no tombstone left behind.
	assert.Error(t, repo.Delete(testTenant, c.DocID))
}

func TestFindByPhone(t *testing.T) {
	customers := []models.Customer{
		{DocID: "a", Name: "Short", Phone: "5551"},
		{DocID: "b", Name: "Local", Phone: "01712345678"},
		{DocID: "c", Name: "Intl", Phone: "+88 01998877665"},
	}

	// Exact digit match, formatting ignored.
	m := FindByPhone(customers, "(555)-1")
	require.NotNil(t, m)
	assert.Equal(t, "a", m.DocID)

	// Suffix match: stored number carries a country prefix the query lacks.
	m = FindByPhone(customers, "01998877665")
	require.NotNil(t, m)
	assert.Equal(t, "c", m.DocID)

	// Suffix match the other way: query carries the prefix.
	m = FindByPhone(customers, "+8801712345678")
	require.NotNil(t, m)
	assert.Equal(t, "b", m.DocID)

	// Both sides must have at least 8 digits for the suffix heuristic.
	assert.Nil(t, FindByPhone(customers, "45678"))
	assert.Nil(t, FindByPhone(customers, ""))
	assert.Nil(t, FindByPhone(customers, "00000000000"))
}

func TestFindByPhoneFirstMatchWins(t *testing.T) {
	customers := []models.Customer{
		{DocID: "x", Phone: "8801712345678"},
		{DocID: "y", Phone: "01712345678"},
	}
	m := FindByPhone(customers, "1712345678")
	require.NotNil(t, m)
	assert.Equal(t, "x", m.DocID)
}
