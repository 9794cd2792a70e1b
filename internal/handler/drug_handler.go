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

var drugService *service.DrugService

// InitDrugHandler wires the drug service into the handler package
func InitDrugHandler(svc *service.DrugService) {
	drugService = svc
}

// DrugRequest defines the structure for drug creation requests
type DrugRequest struct {
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	UnitPrice            float64 `json:"unit_price"`
	MinimumStock         int     `json:"minimum_stock"`
	RequiresPrescription bool    `json:"requires_prescription"`
	SupplierID           uint    `json:"supplier_id"`
}

// ListDrugs returns one page of the drug catalog
func ListDrugs(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDrugOperation("list")

	page, pageSize := pageParams(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	drugs, total, err := drugService.List(page, pageSize)
	if err != nil {
		log.Error("Failed to list drugs", zap.Error(err))
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"drugs":      drugs,
		"pagination": paginationMap(page, pageSize, total),
	})
}

// GetDrug retrieves a drug by ID
func GetDrug(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDrugOperation("get")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid drug ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drug ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	drug, err := drugService.Get(id)
	if err != nil {
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, drug)
}

// CreateDrug adds a new drug to the catalog
func CreateDrug(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDrugOperation("create")

	var req DrugRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.UnitPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_price must not be negative"})
	}
	if req.MinimumStock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "minimum_stock must not be negative"})
	}

	drug := model.Drug{
		Name:                 req.Name,
		GenericName:          req.GenericName,
		Description:          req.Description,
		Category:             req.Category,
		UnitPrice:            req.UnitPrice,
		MinimumStock:         req.MinimumStock,
		RequiresPrescription: req.RequiresPrescription,
		SupplierID:           req.SupplierID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := drugService.Create(&drug); err != nil {
		log.Error("Failed to create drug", zap.String("name", req.Name), zap.Error(err))
		return serviceError(c, log, err)
	}

	log.Info("Drug created", zap.Uint("id", drug.ID), zap.String("name", drug.Name))
	return c.JSON(http.StatusCreated, drug)
}

// UpdateDrug applies a partial patch to a drug; absent fields are unchanged
func UpdateDrug(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDrugOperation("update")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid drug ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drug ID"})
	}

	var patch service.DrugUpdate
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if patch.UnitPrice != nil && *patch.UnitPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_price must not be negative"})
	}
	if patch.MinimumStock != nil && *patch.MinimumStock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "minimum_stock must not be negative"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	drug, err := drugService.Update(id, &patch)
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Drug updated", zap.Uint("id", drug.ID))
	return c.JSON(http.StatusOK, drug)
}

// DeleteDrug removes a drug from the catalog
func DeleteDrug(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDrugOperation("delete")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid drug ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid drug ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := drugService.Delete(id); err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Drug deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}

// idParam parses the :id path parameter
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// pageParams parses 1-indexed pagination query parameters with defaults
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	return page, pageSize
}
