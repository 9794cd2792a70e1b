package model

import (
	"time"
)

// StockStatus is the availability state of a stock batch
type StockStatus string

const (
	StockAvailable  StockStatus = "available"
	StockReserved   StockStatus = "reserved"
	StockOutOfStock StockStatus = "out_of_stock"
	StockExpired    StockStatus = "expired"
)

// Valid reports whether the status is one of the known stock states
func (s StockStatus) Valid() bool {
	switch s {
	case StockAvailable, StockReserved, StockOutOfStock, StockExpired:
		return true
	}
	return false
}

// Stock represents a physical batch of a drug held in inventory
type Stock struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	DrugID          uint        `json:"drug_id" gorm:"index;not null"`
	BatchNumber     string      `json:"batch_number" gorm:"type:varchar(100);index;not null"`
	Quantity        int         `json:"quantity" gorm:"default:0"`
	ManufactureDate time.Time   `json:"manufacture_date"`
	ExpiryDate      time.Time   `json:"expiry_date" gorm:"index"`
	Status          StockStatus `json:"status" gorm:"type:varchar(20);default:'available'"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
