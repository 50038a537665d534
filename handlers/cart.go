package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-server/cart"
	"storefront-server/models"
)

// ValidateCartItems handles POST /api/cart/validate. Each line is checked
// with the same option rules the storefront applies before adding to cart,
// and priced from the catalog.
func ValidateCartItems(c *gin.Context) {
	var request struct {
		Items []models.LineItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := Catalog.ListProducts(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to load products", err)
		return
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		if _, dup := byID[products[i].ID]; !dup {
			byID[products[i].ID] = &products[i]
		}
	}

	validationResults := make([]gin.H, 0, len(request.Items))
	allValid := true
	total := 0.0

	for i, item := range request.Items {
		result := gin.H{"index": i, "id": item.ProductID}

		p, ok := byID[item.ProductID]
		if !ok {
			result["valid"] = false
			result["error"] = "Product not found"
			validationResults = append(validationResults, result)
			allValid = false
			continue
		}
		if item.Quantity < 1 {
			result["valid"] = false
			result["error"] = "Quantity must be at least 1"
			validationResults = append(validationResults, result)
			allValid = false
			continue
		}

		sel, err := cart.Validate(p.Opts(), models.Selection{
			Color:   item.Color,
			Size:    item.Size,
			DogName: item.DogName,
			Note:    item.Note,
		})
		if err != nil {
			var oe *cart.OptionError
			if errors.As(err, &oe) {
				result["field"] = oe.Field
				result["error"] = oe.Err.Error()
			} else {
				result["error"] = err.Error()
			}
			result["valid"] = false
			validationResults = append(validationResults, result)
			allValid = false
			continue
		}

		lineTotal := p.Price * float64(item.Quantity)
		total += lineTotal
		result["valid"] = true
		result["line"] = sel.Line(p.ID, item.Quantity)
		result["price"] = p.Price
		result["line_total"] = lineTotal
		validationResults = append(validationResults, result)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   allValid,
		"items":   validationResults,
		"total":   total,
	})
}
