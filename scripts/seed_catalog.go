package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storefront-server/config"
	"storefront-server/database"
	"storefront-server/models"
)

// seedFile is the YAML layout: a top-level "products" list whose entries use
// the same keys as products.json.
type seedFile struct {
	Products []map[string]interface{} `yaml:"products"`
}

func main() {
	file := flag.String("file", "catalog.yaml", "YAML catalog to load")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}
	products, err := parseSeed(data)
	if err != nil {
		log.Fatal("Invalid seed file:", err)
	}
	if err := database.PrepareProducts(products); err != nil {
		log.Fatal("Invalid seed file:", err)
	}

	if *dryRun {
		fmt.Printf("%s: %d products OK\n", *file, len(products))
		return
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		log.Fatal("Failed to open catalog:", err)
	}
	defer catalog.Close()

	count, err := catalog.ReplaceAll(context.Background(), products)
	if err != nil {
		log.Fatal("Failed to write catalog:", err)
	}
	fmt.Printf("Seeded %d products\n", count)
}

// parseSeed turns YAML entries into products. Entries go through JSON so the
// product's own decoding rules apply, unknown keys included.
func parseSeed(data []byte) ([]models.Product, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	raw, err := json.Marshal(seed.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to convert products: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func openCatalog(cfg *config.Config) (database.Catalog, error) {
	if cfg.DatabaseURL == "" {
		return database.NewFileCatalog(cfg.ProductsFile), nil
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.InitializeTables(zap.NewNop()); err != nil {
		db.Close()
		return nil, err
	}
	return database.NewPostgresCatalog(db), nil
}
