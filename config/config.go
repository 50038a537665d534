package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	ProductsFile string
	PostsFile    string
	StaticDir    string
	UploadDir    string
	DatabaseURL  string
	BodyLimitMB  int

	AdminUser string
	AdminPass string

	StripeSecretKey    string
	CheckoutCurrency   string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	CloudinaryURL string
	UploadFolder  string

	// used by the terminal storefront
	StorefrontURL string
	CartDB        string
}

var AppConfig *Config

func Load() (*Config, error) {
	// .env file is optional, continue without it
	_ = godotenv.Load()

	AppConfig = &Config{
		ServerPort:  getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		ProductsFile: getEnv("PRODUCTS_FILE", "products.json"),
		PostsFile:    getEnv("POSTS_FILE", "posts.json"),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		UploadDir:    getEnv("UPLOAD_DIR", "public/uploads"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		BodyLimitMB:  getEnvInt("BODY_LIMIT_MB", 10),

		AdminUser: getEnv("ADMIN_USER", "admin"),
		AdminPass: getEnv("ADMIN_PASS", "changeme"),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CheckoutCurrency:   getEnv("CHECKOUT_CURRENCY", "usd"),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "https://example.com/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "https://example.com/cancel"),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		UploadFolder:  getEnv("UPLOAD_FOLDER", "storefront"),

		StorefrontURL: getEnv("STOREFRONT_URL", "http://localhost:3000"),
		CartDB:        getEnv("CART_DB", "cart.db"),
	}

	return AppConfig, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
