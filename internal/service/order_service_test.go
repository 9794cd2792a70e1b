package service

import (
	"testing"

	"spc-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDrugs(t *testing.T, db *gorm.DB) (model.Drug, model.Drug) {
	t.Helper()

	paracetamol := model.Drug{Name: "Paracetamol", Category: "Analgesic", UnitPrice: 10.00, SupplierID: 1}
	ibuprofen := model.Drug{Name: "Ibuprofen", Category: "NSAID", UnitPrice: 5.00, SupplierID: 1}
	require.NoError(t, db.Create(&paracetamol).Error)
	require.NoError(t, db.Create(&ibuprofen).Error)
	return paracetamol, ibuprofen
}

func TestCreateOrderComputesTotals(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, second := seedDrugs(t, db)

	order, err := svc.Create("PH-001", []OrderItemInput{
		{DrugID: first.ID, Quantity: 2},
		{DrugID: second.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, 25.00, order.TotalAmount)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.TotalPrice)
	}
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	order, err := svc.Create("PH-001", []OrderItemInput{{DrugID: first.ID, Quantity: 2}})
	require.NoError(t, err)

	// A later price change must not affect the existing order
	require.NoError(t, db.Model(&first).Update("unit_price", 99.00).Error)

	reloaded, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.00, reloaded.TotalAmount)
	assert.Equal(t, 10.00, reloaded.Items[0].UnitPrice)
}

func TestCreateOrderMissingDrugIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	_, err := svc.Create("PH-001", []OrderItemInput{
		{DrugID: first.ID, Quantity: 2},
		{DrugID: 9999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "9999")

	// Nothing was persisted
	var orders, items int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	_, err := svc.Create("PH-001", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create("PH-001", []OrderItemInput{{DrugID: first.ID, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	order, err := svc.Create("PH-001", []OrderItemInput{{DrugID: first.ID, Quantity: 1}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, model.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, updated.Status)

	_, err = svc.UpdateStatus(order.ID, model.OrderStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(9999, model.OrderCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	order, err := svc.Create("PH-001", []OrderItemInput{{DrugID: first.ID, Quantity: 1}})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, cancelled.Status)

	// Line items survive cancellation as the historical record
	reloaded, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, second := seedDrugs(t, db)

	order, err := svc.Create("PH-001", []OrderItemInput{
		{DrugID: first.ID, Quantity: 1},
		{DrugID: second.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	_, err = svc.Get(order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var items int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestListOrdersPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	first, _ := seedDrugs(t, db)

	for i := 0; i < 12; i++ {
		_, err := svc.Create("PH-001", []OrderItemInput{{DrugID: first.ID, Quantity: 1}})
		require.NoError(t, err)
	}

	page1, total, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, page1, 10)

	page2, _, err := svc.List(2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}
