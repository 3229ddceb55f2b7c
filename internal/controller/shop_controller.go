package controller

import (
	"net/http"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	Orders *service.OrderService
}

func NewShopController(orders *service.OrderService) *ShopController {
	return &ShopController{Orders: orders}
}

// POST /shop/create-order
func (ctl *ShopController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctl.Orders.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /shop/execute-payment
func (ctl *ShopController) ExecutePayment(c *gin.Context) {
	var req dto.ExecutePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, recorded, err := ctl.Orders.ExecutePayment(c.Request.Context(), req.PaymentID, req.PayerID)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	// The capture succeeded either way; order_recorded flags the case where
	// no local order matched the payment.
	resp := gin.H{"success": true, "order_recorded": recorded}
	if recorded {
		resp["order"] = order
	}
	c.JSON(http.StatusOK, resp)
}

// GET /orders (admin)
func (ctl *ShopController) GetOrders(c *gin.Context) {
	orders, err := ctl.Orders.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /orders/:id (admin)
func (ctl *ShopController) GetOrder(c *gin.Context) {
	order, err := ctl.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /orders/:id/status (admin)
func (ctl *ShopController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /orders/:id/tracking (admin)
func (ctl *ShopController) UpdateTracking(c *gin.Context) {
	var req dto.UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.Orders.UpdateTracking(c.Request.Context(), c.Param("id"),
		req.TrackingNumber, req.TrackingCarrier)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /orders/:id/mark-viewed (admin)
func (ctl *ShopController) MarkViewed(c *gin.Context) {
	if err := ctl.Orders.MarkViewed(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /orders/unviewed/count (admin)
func (ctl *ShopController) UnviewedCount(c *gin.Context) {
	count, err := ctl.Orders.UnviewedCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DELETE /orders/:id (admin)
func (ctl *ShopController) DeleteOrder(c *gin.Context) {
	if err := ctl.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}

// GET /track-order?order_id=&email= (public, both must match)
func (ctl *ShopController) TrackOrder(c *gin.Context) {
	orderID := c.Query("order_id")
	email := c.Query("email")
	if orderID == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and email are required"})
		return
	}

	order, err := ctl.Orders.Track(c.Request.Context(), orderID, email)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
