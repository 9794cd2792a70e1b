package service

import (
	"testing"

	"spc-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplier(license, email string) *model.Supplier {
	return &model.Supplier{
		Name:          "MedSupply Co",
		LicenseNumber: license,
		Email:         email,
		Phone:         "555-0100",
		Address:       "1 Industrial Way",
	}
}

func TestCreateSupplierUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	require.NoError(t, svc.Create(newSupplier("LIC-1", "one@sup.com")))

	// Same license, different email
	err := svc.Create(newSupplier("LIC-1", "two@sup.com"))
	assert.ErrorIs(t, err, ErrDuplicateSupplier)

	// Same email, different license
	err = svc.Create(newSupplier("LIC-2", "one@sup.com"))
	assert.ErrorIs(t, err, ErrDuplicateSupplier)

	require.NoError(t, svc.Create(newSupplier("LIC-2", "two@sup.com")))
}

func TestCreateSupplierDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	supplier := newSupplier("LIC-1", "one@sup.com")
	require.NoError(t, svc.Create(supplier))

	assert.Equal(t, model.SupplierPending, supplier.Status)
	assert.False(t, supplier.IsActive())
}

func TestUpdateSupplierPartialPatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	supplier := newSupplier("LIC-1", "one@sup.com")
	require.NoError(t, svc.Create(supplier))

	phone := "555-0199"
	updated, err := svc.Update(supplier.ID, &SupplierUpdate{Phone: &phone})
	require.NoError(t, err)

	// Only the supplied field changed
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "MedSupply Co", updated.Name)
	assert.Equal(t, "LIC-1", updated.LicenseNumber)
	assert.Equal(t, "one@sup.com", updated.Email)
}

func TestUpdateSupplierUniquenessAgainstOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	first := newSupplier("LIC-1", "one@sup.com")
	second := newSupplier("LIC-2", "two@sup.com")
	require.NoError(t, svc.Create(first))
	require.NoError(t, svc.Create(second))

	taken := "LIC-1"
	_, err := svc.Update(second.ID, &SupplierUpdate{LicenseNumber: &taken})
	assert.ErrorIs(t, err, ErrDuplicateSupplier)

	// Re-submitting a supplier's own license number is not a conflict
	own := "LIC-2"
	_, err = svc.Update(second.ID, &SupplierUpdate{LicenseNumber: &own})
	assert.NoError(t, err)
}

func TestUpdateSupplierStatusRepresentations(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	supplier := newSupplier("LIC-1", "one@sup.com")
	require.NoError(t, svc.Create(supplier))

	// Four-value status is authoritative
	blacklisted := model.SupplierBlacklisted
	updated, err := svc.Update(supplier.ID, &SupplierUpdate{Status: &blacklisted})
	require.NoError(t, err)
	assert.Equal(t, model.SupplierBlacklisted, updated.Status)
	assert.False(t, updated.IsActive())

	// Binary toggle folds onto the enum: true -> active, false -> suspended
	active := true
	updated, err = svc.Update(supplier.ID, &SupplierUpdate{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, model.SupplierActive, updated.Status)
	assert.True(t, updated.IsActive())

	inactive := false
	updated, err = svc.Update(supplier.ID, &SupplierUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, model.SupplierSuspended, updated.Status)

	// Status wins when both representations are supplied
	pending := model.SupplierPending
	updated, err = svc.Update(supplier.ID, &SupplierUpdate{Status: &pending, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, model.SupplierPending, updated.Status)

	bogus := model.SupplierStatus("frozen")
	_, err = svc.Update(supplier.ID, &SupplierUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteSupplierBlockedByDrugs(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	referenced := newSupplier("LIC-1", "one@sup.com")
	unreferenced := newSupplier("LIC-2", "two@sup.com")
	require.NoError(t, svc.Create(referenced))
	require.NoError(t, svc.Create(unreferenced))

	drug := model.Drug{Name: "Paracetamol", UnitPrice: 10.00, SupplierID: referenced.ID}
	require.NoError(t, db.Create(&drug).Error)

	err := svc.Delete(referenced.ID)
	assert.ErrorIs(t, err, ErrSupplierHasDrugs)

	assert.NoError(t, svc.Delete(unreferenced.ID))
	_, err = svc.Get(unreferenced.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSupplierNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(db)

	_, err := svc.Get(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
