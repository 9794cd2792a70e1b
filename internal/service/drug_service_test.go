package service

import (
	"testing"

	"spc-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrugCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrugService(db)

	drug := model.Drug{
		Name:                 "Amoxicillin",
		GenericName:          "Amoxicillin trihydrate",
		Category:             "Antibiotic",
		UnitPrice:            12.50,
		MinimumStock:         100,
		RequiresPrescription: true,
		SupplierID:           1,
	}
	require.NoError(t, svc.Create(&drug))
	require.NotZero(t, drug.ID)

	got, err := svc.Get(drug.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin", got.Name)
	assert.True(t, got.RequiresPrescription)

	require.NoError(t, svc.Delete(drug.ID))
	_, err = svc.Get(drug.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrugUpdatePartialPatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrugService(db)

	drug := model.Drug{Name: "Aspirin", Category: "Analgesic", UnitPrice: 3.00, MinimumStock: 50}
	require.NoError(t, svc.Create(&drug))

	price := 3.50
	updated, err := svc.Update(drug.ID, &DrugUpdate{UnitPrice: &price})
	require.NoError(t, err)

	// Only the supplied field changed
	assert.Equal(t, 3.50, updated.UnitPrice)
	assert.Equal(t, "Aspirin", updated.Name)
	assert.Equal(t, "Analgesic", updated.Category)
	assert.Equal(t, 50, updated.MinimumStock)
}

func TestDrugUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrugService(db)

	name := "Ghost"
	_, err := svc.Update(9999, &DrugUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrugDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrugService(db)

	assert.ErrorIs(t, svc.Delete(9999), ErrNotFound)
}

func TestDrugListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrugService(db)

	for i := 0; i < 15; i++ {
		require.NoError(t, svc.Create(&model.Drug{Name: "Drug", UnitPrice: 1.00}))
	}

	page1, total, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	page2, _, err := svc.List(2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	// Defaults apply for out-of-range parameters
	defaults, _, err := svc.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, defaults, 10)
}
