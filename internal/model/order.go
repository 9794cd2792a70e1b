package model

import (
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known order states
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order represents a pharmacy order. TotalAmount is derived from the items
// at creation time and never recomputed afterwards.
type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	PharmacyID  string      `json:"pharmacy_id" gorm:"type:varchar(100);index;not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	TotalAmount float64     `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem is a line item owned by exactly one order. UnitPrice and
// TotalPrice snapshot the drug price at order time; later drug price changes
// do not affect existing orders.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"index;not null"`
	DrugID     uint    `json:"drug_id" gorm:"index;not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalPrice float64 `json:"total_price" gorm:"type:decimal(14,2);not null"`
}
