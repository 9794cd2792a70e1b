package service

import (
	"errors"
	"fmt"
	"time"

	"spc-api/internal/model"

	"gorm.io/gorm"
)

// OrderItemInput is one requested line in a new order
type OrderItemInput struct {
	DrugID   uint `json:"drug_id"`
	Quantity int  `json:"quantity"`
}

// OrderService manages orders and computes their derived totals
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderService
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// List returns one page of orders with their items, newest first, and the
// total count
func (s *OrderService) List(page, pageSize int) ([]model.Order, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := s.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := s.db.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Get returns an order with its items or ErrNotFound
func (s *OrderService) Get(id uint) (*model.Order, error) {
	var order model.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Create validates every referenced drug, snapshots unit prices, computes
// the per-item and aggregate totals and persists the order with its items in
// a single transaction. Either the whole order is stored or nothing is.
func (s *OrderService) Create(pharmacyID string, items []OrderItemInput) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &model.Order{
		PharmacyID: pharmacyID,
		Status:     model.OrderPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalAmount float64
		orderItems := make([]model.OrderItem, 0, len(items))

		for _, item := range items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			var drug model.Drug
			if err := tx.First(&drug, item.DrugID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: drug with ID %d", ErrNotFound, item.DrugID)
				}
				return err
			}

			orderItem := model.OrderItem{
				DrugID:     item.DrugID,
				Quantity:   item.Quantity,
				UnitPrice:  drug.UnitPrice,
				TotalPrice: drug.UnitPrice * float64(item.Quantity),
			}
			orderItems = append(orderItems, orderItem)
			totalAmount += orderItem.TotalPrice
		}

		order.Items = orderItems
		order.TotalAmount = totalAmount
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus sets the order status
func (s *OrderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel marks an order cancelled. Line items are kept as the historical
// record of what was ordered.
func (s *OrderService) Cancel(id uint) (*model.Order, error) {
	return s.UpdateStatus(id, model.OrderCancelled)
}

// Delete removes an order and its items
func (s *OrderService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, id).Error
	})
}
