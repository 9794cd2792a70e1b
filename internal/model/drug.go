package model

import (
	"time"
)

// Drug represents a catalog entry in the drug inventory
type Drug struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Name                 string    `json:"name" gorm:"type:varchar(255);index;not null"`
	GenericName          string    `json:"generic_name" gorm:"type:varchar(255)"`
	Description          string    `json:"description" gorm:"type:text"`
	Category             string    `json:"category" gorm:"type:varchar(100);index"`
	UnitPrice            float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	MinimumStock         int       `json:"minimum_stock" gorm:"default:0"`
	RequiresPrescription bool      `json:"requires_prescription" gorm:"default:false"`
	SupplierID           uint      `json:"supplier_id" gorm:"index"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
