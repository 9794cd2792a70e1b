package service

import (
	"errors"
	"time"

	"spc-api/internal/model"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps 1-indexed pagination parameters to sane bounds
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// DrugUpdate carries partial-patch fields for a drug; nil means unchanged
type DrugUpdate struct {
	Name                 *string  `json:"name"`
	GenericName          *string  `json:"generic_name"`
	Description          *string  `json:"description"`
	Category             *string  `json:"category"`
	UnitPrice            *float64 `json:"unit_price"`
	MinimumStock         *int     `json:"minimum_stock"`
	RequiresPrescription *bool    `json:"requires_prescription"`
	SupplierID           *uint    `json:"supplier_id"`
}

// DrugService manages the drug inventory catalog
type DrugService struct {
	db *gorm.DB
}

// NewDrugService creates a new DrugService
func NewDrugService(db *gorm.DB) *DrugService {
	return &DrugService{db: db}
}

// List returns one page of drugs, newest first, with the total count
func (s *DrugService) List(page, pageSize int) ([]model.Drug, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := s.db.Model(&model.Drug{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drugs []model.Drug
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&drugs).Error
	if err != nil {
		return nil, 0, err
	}

	return drugs, total, nil
}

// Get returns a drug by ID or ErrNotFound
func (s *DrugService) Get(id uint) (*model.Drug, error) {
	var drug model.Drug
	if err := s.db.First(&drug, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &drug, nil
}

// Create persists a new drug. The supplier reference is informational and
// not validated against the supplier table.
func (s *DrugService) Create(drug *model.Drug) error {
	return s.db.Create(drug).Error
}

// Update applies a partial patch: only non-nil fields overwrite the loaded
// entity before it is saved
func (s *DrugService) Update(id uint, patch *DrugUpdate) (*model.Drug, error) {
	drug, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		drug.Name = *patch.Name
	}
	if patch.GenericName != nil {
		drug.GenericName = *patch.GenericName
	}
	if patch.Description != nil {
		drug.Description = *patch.Description
	}
	if patch.Category != nil {
		drug.Category = *patch.Category
	}
	if patch.UnitPrice != nil {
		drug.UnitPrice = *patch.UnitPrice
	}
	if patch.MinimumStock != nil {
		drug.MinimumStock = *patch.MinimumStock
	}
	if patch.RequiresPrescription != nil {
		drug.RequiresPrescription = *patch.RequiresPrescription
	}
	if patch.SupplierID != nil {
		drug.SupplierID = *patch.SupplierID
	}
	drug.UpdatedAt = time.Now()

	if err := s.db.Save(drug).Error; err != nil {
		return nil, err
	}
	return drug, nil
}

// Delete removes a drug unconditionally
func (s *DrugService) Delete(id uint) error {
	result := s.db.Delete(&model.Drug{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
