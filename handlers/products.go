package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-server/database"
)

// GetProducts handles GET /api/products
func GetProducts(c *gin.Context) {
	products, err := Catalog.ListProducts(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to load products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// RateProduct handles POST /api/products/:id/rate
func RateProduct(c *gin.Context) {
	var request struct {
		Rating *float64 `json:"rating"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5."})
		return
	}

	r := *request.Rating
	if r < 1 || r > 5 || r != math.Trunc(r) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5."})
		return
	}

	productID := c.Param("id")
	product, err := Catalog.RateProduct(c.Request.Context(), productID, int(r))
	if errors.Is(err, database.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}
	if err != nil {
		internalError(c, "Failed to save rating", err)
		return
	}

	requestLogger(c).Info("product rated",
		zap.String("product_id", productID),
		zap.Int("rating", int(r)),
		zap.Float64("average", product.RatingAverage))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}
