package database

import (
	"database/sql"
	"fmt"

	"storefront-server/models"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type DB struct {
	*sql.DB
}

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables(logger *zap.Logger) error {
	tables := []interface{}{
		models.Product{},
	}

	for _, model := range tables {
		if tableModel, ok := model.(interface {
			TableName() string
			CreateTableSQL() string
		}); ok {
			tableName := tableModel.TableName()

			logger.Info("creating table", zap.String("table", tableName))
			if _, err := db.Exec(tableModel.CreateTableSQL()); err != nil {
				return fmt.Errorf("failed to create table %s: %w", tableName, err)
			}
		}
	}

	return db.runMigrations(logger)
}

// runMigrations handles schema updates for existing tables
func (db *DB) runMigrations(logger *zap.Logger) error {
	migrations := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);`,
		`CREATE INDEX IF NOT EXISTS idx_products_slug ON products((data->>'slug'));`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			// Continue with other migrations even if one fails
			logger.Warn("migration failed", zap.Int("migration", i+1), zap.Error(err))
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
