package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/fitgear/internal/core/domain"
)

var (
	ErrOptimisticLock    = domain.ErrOptimisticLock
	ErrInsufficientStock = errors.New("insufficient stock")
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INT PRIMARY KEY,
		position INT NOT NULL,
		name VARCHAR(150) NOT NULL,
		category VARCHAR(50) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		image_url VARCHAR(255) NOT NULL DEFAULT '',
		rating DECIMAL(3,1) NOT NULL DEFAULT 0,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		product_id INT PRIMARY KEY,
		stock INT NOT NULL DEFAULT 0,
		version INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) PRIMARY KEY,
		shopper_id VARCHAR(64) NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id CHAR(36) NOT NULL,
		product_id INT NOT NULL,
		name VARCHAR(150) NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL,
		PRIMARY KEY (order_id, product_id)
	)`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, category, price, image_url, rating, COALESCE(description, '')
		FROM products ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Rating, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return out, nil
}

func (m *MySQLAdapter) SeedProducts(ctx context.Context, products []domain.Product, stock int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, p := range products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, position, name, category, price, image_url, rating, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE position = VALUES(position), name = VALUES(name),
				category = VALUES(category), price = VALUES(price), image_url = VALUES(image_url),
				rating = VALUES(rating), description = VALUES(description)`,
			p.ID, i, p.Name, p.Category, p.Price, p.Image, p.Rating, p.Description,
		)
		if err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO inventory (product_id, stock, version) VALUES (?, ?, 0)
			ON DUPLICATE KEY UPDATE stock = VALUES(stock), version = version + 1, updated_at = NOW()`,
			p.ID, stock,
		)
		if err != nil {
			return fmt.Errorf("upsert inventory %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, shopper_id, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.ShopperID, order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, it.ProductID, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", it.ProductID, err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET stock = stock - ?, version = version + 1, updated_at = NOW()
			WHERE product_id = ? AND stock >= ?`,
			it.Quantity, it.ProductID, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("update inventory: %w", err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetInventory(ctx context.Context, productID int) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := m.db.QueryRowContext(ctx, `
		SELECT product_id, stock, version, created_at, updated_at
		FROM inventory WHERE product_id = ?`, productID,
	).Scan(&inv.ProductID, &inv.Stock, &inv.Version, &inv.CreatedAt, &inv.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}

	return &inv, nil
}

func (m *MySQLAdapter) UpdateInventory(ctx context.Context, inv domain.Inventory) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE inventory
		SET stock = ?, version = version + 1, updated_at = NOW()
		WHERE product_id = ? AND version = ?`,
		inv.Stock, inv.ProductID, inv.Version,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrOptimisticLock
	}

	return nil
}
