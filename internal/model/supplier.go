package model

import (
	"time"
)

// SupplierStatus is the four-value lifecycle state of a supplier
type SupplierStatus string

const (
	SupplierPending     SupplierStatus = "pending"
	SupplierActive      SupplierStatus = "active"
	SupplierSuspended   SupplierStatus = "suspended"
	SupplierBlacklisted SupplierStatus = "blacklisted"
)

// Supplier represents a drug supplier. The four-value Status column is the
// authoritative representation; the binary is_active view consumed by the UI
// is derived from it and never stored.
type Supplier struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"type:varchar(200);index;not null"`
	LicenseNumber string         `json:"license_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email         string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone         string         `json:"phone" gorm:"type:varchar(20)"`
	Address       string         `json:"address" gorm:"type:varchar(500)"`
	Status        SupplierStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsActive reports the binary status view: only an "active" supplier counts
// as active; pending, suspended and blacklisted all map to inactive.
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierActive
}
