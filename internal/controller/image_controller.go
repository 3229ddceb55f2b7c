package controller

import (
	"net/http"
	"strconv"

	"apebrain-backend/internal/images"

	"github.com/gin-gonic/gin"
)

type ImageController struct {
	Fetcher images.Fetcher
}

func NewImageController(fetcher images.Fetcher) *ImageController {
	return &ImageController{Fetcher: fetcher}
}

// GET /fetch-image?query= (stock-photo proxy)
func (ctl *ImageController) FetchImage(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	uri, err := ctl.Fetcher.FetchDataURI(query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": uri})
}

// GET /fetch-images?query=&count=
func (ctl *ImageController) FetchImages(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", "3"))
	if err != nil || count < 1 || count > 10 {
		count = 3
	}

	uris, err := ctl.Fetcher.FetchDataURIs(query, count)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": uris})
}
