package handler

import (
	"net/http"
	"time"

	"spc-api/internal/model"
	"spc-api/internal/service"
	"spc-api/pkg/logger"
	"spc-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var supplierService *service.SupplierService

// InitSupplierHandler wires the supplier service into the handler package
func InitSupplierHandler(svc *service.SupplierService) {
	supplierService = svc
}

// SupplierRequest defines the structure for supplier creation requests
type SupplierRequest struct {
	Name          string               `json:"name"`
	LicenseNumber string               `json:"license_number"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	Status        model.SupplierStatus `json:"status"`
}

// supplierView pairs the stored four-value status with the derived binary
// is_active view the UI consumes
type supplierView struct {
	*model.Supplier
	IsActive bool `json:"is_active"`
}

func viewOf(s *model.Supplier) supplierView {
	return supplierView{Supplier: s, IsActive: s.IsActive()}
}

// ListSuppliers returns one page of suppliers
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list")

	page, pageSize := pageParams(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	suppliers, total, err := supplierService.List(page, pageSize)
	if err != nil {
		log.Error("Failed to list suppliers", zap.Error(err))
		return serviceError(c, log, err)
	}

	views := make([]supplierView, 0, len(suppliers))
	for i := range suppliers {
		views = append(views, viewOf(&suppliers[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"suppliers":  views,
		"pagination": paginationMap(page, pageSize, total),
	})
}

// GetSupplier retrieves a supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("get")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	supplier, err := supplierService.Get(id)
	if err != nil {
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, viewOf(supplier))
}

// CreateSupplier creates a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.LicenseNumber == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, license_number and email are required"})
	}

	supplier := model.Supplier{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        req.Status,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := supplierService.Create(&supplier); err != nil {
		log.Warn("Failed to create supplier",
			zap.String("name", req.Name),
			zap.String("license_number", req.LicenseNumber),
			zap.Error(err))
		return serviceError(c, log, err)
	}

	log.Info("Supplier created",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name),
		zap.String("license_number", supplier.LicenseNumber))
	return c.JSON(http.StatusCreated, viewOf(&supplier))
}

// UpdateSupplier applies a partial patch to a supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("update")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	var patch service.SupplierUpdate
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	supplier, err := supplierService.Update(id, &patch)
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Supplier updated", zap.Uint("id", supplier.ID))
	return c.JSON(http.StatusOK, viewOf(supplier))
}

// DeleteSupplier removes a supplier unless drugs still reference it
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("delete")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := supplierService.Delete(id); err != nil {
		log.Warn("Failed to delete supplier", zap.Uint("id", id), zap.Error(err))
		return serviceError(c, log, err)
	}

	log.Info("Supplier deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
