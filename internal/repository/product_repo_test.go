package repository

import (
	"testing"

	"orderhub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name, code string, price int64) *models.Product {
	return &models.Product{
		TenantPath: testTenant,
		OwnerID:    testOwner,
		Name:       name,
		Code:       code,
		Price:      decimal.NewFromInt(price),
	}
}

func TestProductDuplicateCodeRejected(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))

	// Two code-less products never collide.
	require.NoError(t, repo.Create(newProduct("Plain 1", "", 10)))
	require.NoError(t, repo.Create(newProduct("Plain 2", "", 12)))

	require.NoError(t, repo.Create(newProduct("Cake", "A1", 20)))
	err := repo.Create(newProduct("Other Cake", "A1", 25))
	assert.ErrorIs(t, err, ErrDuplicateCode)

	// The failed create left the store unchanged.
	list, err := repo.List(testTenant, testOwner)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, p := range list {
		assert.NotEqual(t, "Other Cake", p.Name)
	}
}

func TestProductDuplicateCodeAcrossTenantsAllowed(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	require.NoError(t, repo.Create(newProduct("Cake", "A1", 20)))

	other := newProduct("Cake", "A1", 20)
	other.TenantPath = "OtherShopotherexamplecom"
	other.OwnerID = 2
	assert.NoError(t, repo.Create(other))
}

func TestProductUpdateCodeCollision(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	require.NoError(t, repo.Create(newProduct("Cake", "A1", 20)))
	p2 := newProduct("Pie", "B2", 15)
	require.NoError(t, repo.Create(p2))

	err := repo.Update(testTenant, p2.DocID, map[string]interface{}{"code": "A1"})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	// Updating a product keeping its own code is not a collision with itself.
	err = repo.Update(testTenant, p2.DocID, map[string]interface{}{"code": "B2", "name": "Apple Pie"})
	require.NoError(t, err)

	got, err := repo.GetByDocID(testTenant, p2.DocID)
	require.NoError(t, err)
	assert.Equal(t, "Apple Pie", got.Name)
	assert.Equal(t, "B2", got.Code)
}

func TestProductImportKeepsCallerDocID(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	p := newProduct("Imported", "IMP1", 5)
	p.DocID = "fixed-import-id"
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByDocID(testTenant, "fixed-import-id")
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Name)
}

func TestProductDeleteHard(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	p := newProduct("Cake", "A1", 20)
	require.NoError(t, repo.Create(p))
	require.NoError(t, repo.Delete(testTenant, p.DocID))

	n, err := repo.Count(testTenant, testOwner)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	// Freed code can be reused afterwards.
	assert.NoError(t, repo.Create(newProduct("New Cake", "A1", 22)))
}
