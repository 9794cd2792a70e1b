package service

import (
	"errors"
	"time"

	"spc-api/internal/model"

	"gorm.io/gorm"
)

// StockUpdate carries partial-patch fields for a stock batch; nil means
// unchanged
type StockUpdate struct {
	Quantity *int               `json:"quantity"`
	Status   *model.StockStatus `json:"status"`
}

// StockService manages physical stock batches per drug
type StockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockService
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// ListByDrug returns all stock batches for a drug, earliest expiry first
func (s *StockService) ListByDrug(drugID uint) ([]model.Stock, error) {
	var stocks []model.Stock
	err := s.db.Where("drug_id = ?", drugID).
		Order("expiry_date ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// Create records a new stock batch for an existing drug. Batch numbers are
// unique per drug.
func (s *StockService) Create(stock *model.Stock) error {
	var drugCount int64
	if err := s.db.Model(&model.Drug{}).Where("id = ?", stock.DrugID).Count(&drugCount).Error; err != nil {
		return err
	}
	if drugCount == 0 {
		return ErrNotFound
	}

	var count int64
	err := s.db.Model(&model.Stock{}).
		Where("drug_id = ? AND batch_number = ?", stock.DrugID, stock.BatchNumber).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateBatch
	}

	if stock.Status == "" {
		stock.Status = model.StockAvailable
	}
	return s.db.Create(stock).Error
}

// Update applies a partial patch to a batch's quantity and status
func (s *StockService) Update(id uint, patch *StockUpdate) (*model.Stock, error) {
	var stock model.Stock
	if err := s.db.First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Quantity != nil {
		stock.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		stock.Status = *patch.Status
	}
	stock.UpdatedAt = time.Now()

	if err := s.db.Save(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// ExpiringBefore returns batches that are not yet marked expired but whose
// expiry date falls before the cutoff
func (s *StockService) ExpiringBefore(cutoff time.Time) ([]model.Stock, error) {
	var stocks []model.Stock
	err := s.db.Where("expiry_date < ? AND status <> ?", cutoff, model.StockExpired).
		Order("expiry_date ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}
