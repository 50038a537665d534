package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-server/models"
)

// PostgresCatalog stores each product as a JSONB document keyed by id,
// ordered by its position in the last replace-all payload.
type PostgresCatalog struct {
	db *DB
}

func NewPostgresCatalog(db *DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (pc *PostgresCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := pc.db.QueryContext(ctx, `SELECT data FROM products ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		var p models.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func (pc *PostgresCatalog) ReplaceAll(ctx context.Context, products []models.Product) (int, error) {
	if err := PrepareProducts(products); err != nil {
		return 0, err
	}

	tx, err := pc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return 0, fmt.Errorf("failed to clear products: %w", err)
	}

	// duplicate ids keep the later entry
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, position, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, data = EXCLUDED.data, updated_at = now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("failed to encode product %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, i, data); err != nil {
			return 0, fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit catalog: %w", err)
	}
	return len(products), nil
}

func (pc *PostgresCatalog) RateProduct(ctx context.Context, id string, rating int) (*models.Product, error) {
	tx, err := pc.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var data []byte
	err = tx.QueryRowContext(ctx, `SELECT data FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	applyRating(&p, rating)

	updated, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE products SET data = $1, updated_at = now() WHERE id = $2`, updated, id); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rating: %w", err)
	}
	return &p, nil
}

func (pc *PostgresCatalog) Close() error {
	return pc.db.Close()
}
