package handler

import (
	"errors"
	"net/http"

	"spc-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// serviceError translates service-layer error kinds to HTTP statuses.
// Unclassified errors become a generic 500 with the detail logged
// server-side only.
func serviceError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrDuplicateSupplier),
		errors.Is(err, service.ErrSupplierHasDrugs),
		errors.Is(err, service.ErrDuplicateBatch):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	log.Error("Unhandled service error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred while processing your request"})
}

// paginationMap builds the standard pagination block for list responses
func paginationMap(page, pageSize int, total int64) echo.Map {
	return echo.Map{
		"current_page": page,
		"page_size":    pageSize,
		"total":        total,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
