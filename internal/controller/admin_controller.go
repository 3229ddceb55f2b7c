package controller

import (
	"net/http"

	"apebrain-backend/internal/config"
	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Store *config.AdminStore
	Auth  *service.AuthService
}

func NewAdminController(store *config.AdminStore, auth *service.AuthService) *AdminController {
	return &AdminController{Store: store, Auth: auth}
}

// POST /admin/login
func (ctl *AdminController) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !ctl.Store.Check(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := ctl.Auth.IssueAdminToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "access_token": token})
}

// GET /admin/settings (admin)
func (ctl *AdminController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin_username": ctl.Store.Username()})
}

// POST /admin/settings (admin)
func (ctl *AdminController) UpdateSettings(c *gin.Context) {
	var req dto.AdminSettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.Store.Update(req.CurrentPassword, req.AdminUsername, req.NewPassword); err != nil {
		if err == config.ErrBadCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated successfully"})
}
