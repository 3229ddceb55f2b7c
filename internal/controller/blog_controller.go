package controller

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	Blogs *service.BlogService
}

func NewBlogController(blogs *service.BlogService) *BlogController {
	return &BlogController{Blogs: blogs}
}

// POST /blogs/generate (admin)
func (ctl *BlogController) Generate(c *gin.Context) {
	var req dto.GenerateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctl.Blogs.Generate(c.Request.Context(), req.Keywords)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /blogs (admin)
func (ctl *BlogController) Create(c *gin.Context) {
	var req dto.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := ctl.Blogs.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// GET /blogs?status= (public, defaults to published)
func (ctl *BlogController) List(c *gin.Context) {
	posts, err := ctl.Blogs.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blogs"})
		return
	}
	if posts == nil {
		posts = []*model.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// GET /blogs/:id
func (ctl *BlogController) Get(c *gin.Context) {
	post, err := ctl.Blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Blog not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// PUT /blogs/:id (admin)
func (ctl *BlogController) Update(c *gin.Context) {
	var req dto.BlogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := ctl.Blogs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// POST /blogs/:id/publish (admin)
func (ctl *BlogController) Publish(c *gin.Context) {
	if err := ctl.Blogs.Publish(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Blog not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog published successfully"})
}

// DELETE /blogs/:id (admin)
func (ctl *BlogController) Delete(c *gin.Context) {
	if err := ctl.Blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Blog not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog deleted successfully"})
}

// POST /blogs/:id/upload-image (admin, multipart)
func (ctl *BlogController) UploadImage(c *gin.Context) {
	ctl.uploadAsset(c, "image/jpeg", ctl.Blogs.AttachImage)
}

// POST /blogs/:id/upload-audio (admin, multipart)
func (ctl *BlogController) UploadAudio(c *gin.Context) {
	ctl.uploadAsset(c, "audio/mpeg", ctl.Blogs.AttachAudio)
}

// uploadAsset reads the multipart "file" field and stores it on the blog as
// an inline base64 data-URI. The blog must already exist.
func (ctl *BlogController) uploadAsset(c *gin.Context, fallbackType string,
	attach func(ctx context.Context, id, uri string) error) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackType
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw))

	if err := attach(c.Request.Context(), c.Param("id"), dataURI); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "Blog not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": dataURI})
}
