package controller

import (
	"net/http"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	Coupons *service.CouponService
}

func NewCouponController(coupons *service.CouponService) *CouponController {
	return &CouponController{Coupons: coupons}
}

// POST /coupons (admin)
func (ctl *CouponController) Create(c *gin.Context) {
	var req dto.CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := ctl.Coupons.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// GET /coupons (admin)
func (ctl *CouponController) GetAll(c *gin.Context) {
	coupons, err := ctl.Coupons.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// GET /coupons/active (public)
func (ctl *CouponController) GetActive(c *gin.Context) {
	coupons, err := ctl.Coupons.GetActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// POST /coupons/validate (public)
func (ctl *CouponController) Validate(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctl.Coupons.Validate(c.Request.Context(), req))
}

// PUT /coupons/:id (admin)
func (ctl *CouponController) Update(c *gin.Context) {
	var req dto.CouponUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := ctl.Coupons.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// DELETE /coupons/:id (admin)
func (ctl *CouponController) Delete(c *gin.Context) {
	if err := ctl.Coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Coupon not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted"})
}
