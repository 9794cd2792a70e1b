package handler

import (
	"net/http"
	"strconv"
	"time"

	"spc-api/internal/model"
	"spc-api/internal/service"
	"spc-api/pkg/logger"
	"spc-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var stockService *service.StockService

// InitStockHandler wires the stock service into the handler package
func InitStockHandler(svc *service.StockService) {
	stockService = svc
}

// StockRequest defines the structure for stock batch creation requests
type StockRequest struct {
	DrugID          uint              `json:"drug_id"`
	BatchNumber     string            `json:"batch_number"`
	Quantity        int               `json:"quantity"`
	ManufactureDate time.Time         `json:"manufacture_date"`
	ExpiryDate      time.Time         `json:"expiry_date"`
	Status          model.StockStatus `json:"status"`
}

// ListDrugStocks returns all stock batches for a drug
func ListDrugStocks(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("list")

	drugID, err := idParam(c)
	if err != nil {
		log.Error("Invalid drug ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drug ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	stocks, err := stockService.ListByDrug(drugID)
	if err != nil {
		log.Error("Failed to list stock batches", zap.Uint("drug_id", drugID), zap.Error(err))
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"stocks": stocks})
}

// CreateStock records a new stock batch
func CreateStock(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("create")

	var req StockRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.DrugID == 0 || req.BatchNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "drug_id and batch_number are required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}

	stock := model.Stock{
		DrugID:          req.DrugID,
		BatchNumber:     req.BatchNumber,
		Quantity:        req.Quantity,
		ManufactureDate: req.ManufactureDate,
		ExpiryDate:      req.ExpiryDate,
		Status:          req.Status,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := stockService.Create(&stock); err != nil {
		log.Warn("Failed to create stock batch",
			zap.Uint("drug_id", req.DrugID),
			zap.String("batch_number", req.BatchNumber),
			zap.Error(err))
		return serviceError(c, log, err)
	}

	log.Info("Stock batch created",
		zap.Uint("id", stock.ID),
		zap.Uint("drug_id", stock.DrugID),
		zap.String("batch_number", stock.BatchNumber))
	return c.JSON(http.StatusCreated, stock)
}

// UpdateStock applies a partial patch to a batch's quantity and status
func UpdateStock(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("update")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid stock ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stock ID"})
	}

	var patch service.StockUpdate
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if patch.Quantity != nil && *patch.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	stock, err := stockService.Update(id, &patch)
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Stock batch updated", zap.Uint("id", stock.ID))
	return c.JSON(http.StatusOK, stock)
}

// ListExpiringStocks returns batches expiring within the given number of
// days (default 30)
func ListExpiringStocks(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("expiring")

	days, _ := strconv.Atoi(c.QueryParam("days"))
	if days <= 0 {
		days = 30
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	cutoff := time.Now().AddDate(0, 0, days)
	stocks, err := stockService.ExpiringBefore(cutoff)
	if err != nil {
		log.Error("Failed to list expiring stock", zap.Error(err))
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"stocks": stocks, "days": days})
}
