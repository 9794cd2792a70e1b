package service

import (
	"errors"
	"time"

	"spc-api/internal/model"

	"gorm.io/gorm"
)

// SupplierUpdate carries partial-patch fields for a supplier; nil means
// unchanged. Status and IsActive are alternative representations of the same
// field: Status wins when both are supplied, IsActive alone maps true to
// active and false to suspended.
type SupplierUpdate struct {
	Name          *string               `json:"name"`
	LicenseNumber *string               `json:"license_number"`
	Email         *string               `json:"email"`
	Phone         *string               `json:"phone"`
	Address       *string               `json:"address"`
	Status        *model.SupplierStatus `json:"status"`
	IsActive      *bool                 `json:"is_active"`
}

// SupplierService manages suppliers and guards their uniqueness constraints
type SupplierService struct {
	db *gorm.DB
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// List returns one page of suppliers, newest first, with the total count
func (s *SupplierService) List(page, pageSize int) ([]model.Supplier, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := s.db.Model(&model.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []model.Supplier
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&suppliers).Error
	if err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

// Get returns a supplier by ID or ErrNotFound
func (s *SupplierService) Get(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// Create persists a new supplier after checking that neither the license
// number nor the email is already taken
func (s *SupplierService) Create(supplier *model.Supplier) error {
	var count int64
	err := s.db.Model(&model.Supplier{}).
		Where("license_number = ? OR email = ?", supplier.LicenseNumber, supplier.Email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSupplier
	}

	if supplier.Status == "" {
		supplier.Status = model.SupplierPending
	} else if !validSupplierStatus(supplier.Status) {
		return ErrInvalidStatus
	}
	return s.db.Create(supplier).Error
}

// Update applies a partial patch, re-checking uniqueness when the license
// number or email changes
func (s *SupplierService) Update(id uint, patch *SupplierUpdate) (*model.Supplier, error) {
	supplier, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.LicenseNumber != nil || patch.Email != nil {
		license := supplier.LicenseNumber
		if patch.LicenseNumber != nil {
			license = *patch.LicenseNumber
		}
		email := supplier.Email
		if patch.Email != nil {
			email = *patch.Email
		}

		var count int64
		err := s.db.Model(&model.Supplier{}).
			Where("id <> ? AND (license_number = ? OR email = ?)", id, license, email).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateSupplier
		}
	}

	if patch.Name != nil {
		supplier.Name = *patch.Name
	}
	if patch.LicenseNumber != nil {
		supplier.LicenseNumber = *patch.LicenseNumber
	}
	if patch.Email != nil {
		supplier.Email = *patch.Email
	}
	if patch.Phone != nil {
		supplier.Phone = *patch.Phone
	}
	if patch.Address != nil {
		supplier.Address = *patch.Address
	}
	switch {
	case patch.Status != nil:
		if !validSupplierStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		supplier.Status = *patch.Status
	case patch.IsActive != nil:
		// Binary UI toggle folded onto the four-value enum
		if *patch.IsActive {
			supplier.Status = model.SupplierActive
		} else {
			supplier.Status = model.SupplierSuspended
		}
	}
	supplier.UpdatedAt = time.Now()

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier unless any drug still references it
func (s *SupplierService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var drugCount int64
	err := s.db.Model(&model.Drug{}).
		Where("supplier_id = ?", id).
		Count(&drugCount).Error
	if err != nil {
		return err
	}
	if drugCount > 0 {
		return ErrSupplierHasDrugs
	}

	return s.db.Delete(&model.Supplier{}, id).Error
}

func validSupplierStatus(status model.SupplierStatus) bool {
	switch status {
	case model.SupplierPending, model.SupplierActive, model.SupplierSuspended, model.SupplierBlacklisted:
		return true
	}
	return false
}
