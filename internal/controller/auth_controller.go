package controller

import (
	"net/http"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// resetRequestMessage is returned regardless of whether the email exists.
const resetRequestMessage = "If your email is registered, you will receive a password reset link"

type AuthController struct {
	Auth   *service.AuthService
	Orders *service.OrderService
}

func NewAuthController(auth *service.AuthService, orders *service.OrderService) *AuthController {
	return &AuthController{Auth: auth, Orders: orders}
}

// POST /auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctl.Auth.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctl.Auth.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /auth/me (requires token)
func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.Auth.CurrentUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /auth/orders (requires token)
func (ctl *AuthController) MyOrders(c *gin.Context) {
	user, err := ctl.Auth.CurrentUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "User not found"})
		return
	}

	orders, err := ctl.Orders.GetByCustomerEmail(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /auth/password-reset-request (always succeeds)
func (ctl *AuthController) PasswordResetRequest(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctl.Auth.RequestPasswordReset(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": resetRequestMessage})
}

// POST /auth/password-reset
func (ctl *AuthController) PasswordReset(c *gin.Context) {
	var req dto.PasswordReset
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.Auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
}
