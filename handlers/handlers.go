package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-server/database"
	"storefront-server/models"
	"storefront-server/services"
)

// PostsSource is the read side of the home page blog.
type PostsSource interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
}

// Dependencies are the collaborators the handlers work against.
type Dependencies struct {
	Catalog   database.Catalog
	Posts     PostsSource
	Uploader  services.Uploader
	Checkout  services.CheckoutService
	Logger    *zap.Logger
	AdminUser string
	AdminPass string
}

var (
	Catalog  database.Catalog
	Posts    PostsSource
	Uploader services.Uploader
	Checkout services.CheckoutService
	Logger   = zap.NewNop()

	adminUser string
	adminPass string
)

func InitializeHandlers(deps Dependencies) {
	Catalog = deps.Catalog
	Posts = deps.Posts
	Uploader = deps.Uploader
	Checkout = deps.Checkout
	if deps.Logger != nil {
		Logger = deps.Logger
	}
	adminUser = deps.AdminUser
	adminPass = deps.AdminPass
}

// RegisterRoutes mounts the API, the admin surface and the static storefront.
func RegisterRoutes(router *gin.Engine, staticDir, uploadDir string) {
	router.GET("/health", Health)

	api := router.Group("/api")
	{
		api.GET("/products", GetProducts)
		api.POST("/products/:id/rate", RateProduct)
		api.GET("/posts", GetPosts)
		api.POST("/cart/validate", ValidateCartItems)
		api.POST("/create-checkout-session", CreateCheckoutSession)

		admin := api.Group("/admin", AdminMiddleware())
		{
			admin.GET("/products", GetAdminProducts)
			admin.POST("/products", SaveAdminProducts)
			admin.GET("/products/export", ExportProducts)
			admin.POST("/upload", UploadImage)
		}
	}

	if uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}
	if staticDir != "" {
		index := filepath.Join(staticDir, "index.html")
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
		// everything else under the static dir, e.g. /products.json, /admin/
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Storefront server is running",
	})
}
