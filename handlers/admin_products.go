package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-server/database"
	"storefront-server/models"
	"storefront-server/services"
)

// GetAdminProducts handles GET /api/admin/products
func GetAdminProducts(c *gin.Context) {
	GetProducts(c)
}

// SaveAdminProducts handles POST /api/admin/products. The body replaces the
// whole catalog.
func SaveAdminProducts(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be an array of products"})
		return
	}

	var products []models.Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be an array of products"})
		return
	}

	count, err := Catalog.ReplaceAll(c.Request.Context(), products)
	var verr *database.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Each product must have an id (or slug)",
			"index": verr.Index,
		})
		return
	}
	if err != nil {
		internalError(c, "Failed to save products", err)
		return
	}

	requestLogger(c).Info("catalog replaced", zap.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
}

// UploadImage handles POST /api/admin/upload
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		// older admin builds post the file as "file"
		file, err = c.FormFile("file")
	}
	if err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	url, err := Uploader.Upload(c.Request.Context(), file)
	if err != nil {
		internalError(c, "Failed to upload image", err)
		return
	}

	requestLogger(c).Info("image uploaded",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
		zap.String("url", url))
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

// ExportProducts handles GET /api/admin/products/export
func ExportProducts(c *gin.Context) {
	products, err := Catalog.ListProducts(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to load products", err)
		return
	}

	var buf bytes.Buffer
	if err := services.ExportCatalog(&buf, products); err != nil {
		internalError(c, "Failed to export products", err)
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
