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

var orderService *service.OrderService

// InitOrderHandler wires the order service into the handler package
func InitOrderHandler(svc *service.OrderService) {
	orderService = svc
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	PharmacyID string                   `json:"pharmacy_id"`
	Items      []service.OrderItemInput `json:"items"`
}

// ListOrders returns one page of orders with their items
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("list")

	page, pageSize := pageParams(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	orders, total, err := orderService.List(page, pageSize)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders":     orders,
		"pagination": paginationMap(page, pageSize, total),
	})
}

// GetOrder retrieves an order with its items
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("get")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	order, err := orderService.Get(id)
	if err != nil {
		return serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, order)
}

// CreateOrder creates an order; totals are computed from the current drug
// prices and the whole operation is all-or-nothing
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("create")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.PharmacyID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pharmacy_id is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	order, err := orderService.Create(req.PharmacyID, req.Items)
	if err != nil {
		log.Warn("Failed to create order",
			zap.String("pharmacy_id", req.PharmacyID),
			zap.Error(err))
		return serviceError(c, log, err)
	}

	log.Info("Order created",
		zap.Uint("id", order.ID),
		zap.String("pharmacy_id", order.PharmacyID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus sets the order status
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("update_status")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	order, err := orderService.UpdateStatus(id, req.Status)
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Order status updated",
		zap.Uint("id", order.ID),
		zap.String("status", string(order.Status)))
	return c.JSON(http.StatusOK, order)
}

// CancelOrder marks an order cancelled
func CancelOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("cancel")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	order, err := orderService.Cancel(id)
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Order cancelled", zap.Uint("id", order.ID))
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order and its items
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("delete")

	id, err := idParam(c)
	if err != nil {
		log.Error("Invalid order ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := orderService.Delete(id); err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Order deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
