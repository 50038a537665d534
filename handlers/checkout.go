package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-server/models"
	"storefront-server/services"
)

// CreateCheckoutSession handles POST /api/create-checkout-session
func CreateCheckoutSession(c *gin.Context) {
	var request struct {
		Items []models.LineItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout request."})
		return
	}

	if !Checkout.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe is not configured yet."})
		return
	}

	log := requestLogger(c)

	products, err := Catalog.ListProducts(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to create checkout session.", err)
		return
	}

	lines, err := services.BuildLineItems(products, request.Items)
	if errors.Is(err, services.ErrEmptyCheckout) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
		return
	}
	if err != nil {
		log.Warn("checkout rejected", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session."})
		return
	}

	url, err := Checkout.CreateSession(c.Request.Context(), lines)
	if errors.Is(err, services.ErrUpstreamUnconfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe is not configured yet."})
		return
	}
	if err != nil {
		internalError(c, "Failed to create checkout session.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
