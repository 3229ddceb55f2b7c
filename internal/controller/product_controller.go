package controller

import (
	"net/http"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Products *service.ProductService
}

func NewProductController(products *service.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// GET /products (public)
func (ctl *ProductController) GetAll(c *gin.Context) {
	products, err := ctl.Products.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id (public)
func (ctl *ProductController) Get(c *gin.Context) {
	product, err := ctl.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /products (admin)
func (ctl *ProductController) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.Products.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /products/:id (admin)
func (ctl *ProductController) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.Products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id (admin)
func (ctl *ProductController) Delete(c *gin.Context) {
	if err := ctl.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
