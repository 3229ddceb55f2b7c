package controller

import (
	"net/http"

	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *service.SettingsService
}

func NewSettingsController(settings *service.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// GET /landing-settings (public)
func (ctl *SettingsController) GetLanding(c *gin.Context) {
	ctl.get(c, service.SettingsKeyLanding)
}

// POST /landing-settings (admin)
func (ctl *SettingsController) SetLanding(c *gin.Context) {
	ctl.set(c, service.SettingsKeyLanding)
}

// GET /blog-features (public)
func (ctl *SettingsController) GetBlogFeatures(c *gin.Context) {
	ctl.get(c, service.SettingsKeyBlogFeatures)
}

// POST /blog-features (admin)
func (ctl *SettingsController) SetBlogFeatures(c *gin.Context) {
	ctl.set(c, service.SettingsKeyBlogFeatures)
}

func (ctl *SettingsController) get(c *gin.Context, key string) {
	values, err := ctl.Settings.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, values)
}

func (ctl *SettingsController) set(c *gin.Context, key string) {
	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.Settings.Set(c.Request.Context(), key, values); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
