package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"order-downloader/migrations"
)

// Store is the SQLite-backed persistence layer. It holds the raw order and
// product payloads and owns the product-id derivation, so order bodies are
// never parsed outside this package.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and ensures
// the orders and products tables exist. Safe to call on every run.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if err := migrations.AutoMigrateOrders(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating orders table: %w", err)
	}
	if err := migrations.AutoMigrateProducts(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating products table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertOrder inserts the raw order payload, replacing the body in place if
// the order id is already present.
func (s *Store) UpsertOrder(ctx context.Context, orderID, body string) error {
	query := `INSERT INTO orders (orderId, orderBody) VALUES (?, ?) ON CONFLICT(orderId) DO UPDATE SET orderBody = excluded.orderBody`
	_, err := s.db.ExecContext(ctx, query, orderID, body)
	if err != nil {
		return fmt.Errorf("upserting order %s: %w", orderID, err)
	}
	return nil
}

// UpsertProduct inserts the raw product payload, replacing the body in
// place if the product code is already present.
func (s *Store) UpsertProduct(ctx context.Context, productCode, body string) error {
	query := `INSERT INTO products (productCode, productBody) VALUES (?, ?) ON CONFLICT(productCode) DO UPDATE SET productBody = excluded.productBody`
	_, err := s.db.ExecContext(ctx, query, productCode, body)
	if err != nil {
		return fmt.Errorf("upserting product %s: %w", productCode, err)
	}
	return nil
}

// orderDocument is the subset of an order body needed to find product ids.
type orderDocument struct {
	OrderDetails *struct {
		Entries []struct {
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
		} `json:"entries"`
	} `json:"orderDetails"`
}

// ListReferencedProductIDs walks every stored order body and collects the
// product.id of each orderDetails.entries element, deduplicated
// case-insensitively and sorted. Entries without a product id contribute
// nothing; a body that is not valid JSON or lacks the orderDetails.entries
// path is an error, since silently skipping it would under-fetch products.
func (s *Store) ListReferencedProductIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT orderId, orderBody FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("reading stored orders: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]string)
	for rows.Next() {
		var orderID, body string
		if err := rows.Scan(&orderID, &body); err != nil {
			return nil, err
		}

		var doc orderDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("order %s: body is not valid JSON: %w", orderID, err)
		}
		if doc.OrderDetails == nil || doc.OrderDetails.Entries == nil {
			return nil, fmt.Errorf("order %s: body has no orderDetails.entries", orderID)
		}

		for _, entry := range doc.OrderDetails.Entries {
			id := entry.Product.ID
			if id == "" {
				continue
			}
			key := strings.ToLower(id)
			if _, ok := seen[key]; !ok {
				seen[key] = id
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(seen))
	for _, id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListOrderIDs returns the ids of all stored orders in insertion order.
func (s *Store) ListOrderIDs(ctx context.Context) ([]string, error) {
	return s.listColumn(ctx, `SELECT orderId FROM orders ORDER BY rowId`)
}

// ListProductCodes returns the codes of all stored products in insertion order.
func (s *Store) ListProductCodes(ctx context.Context) ([]string, error) {
	return s.listColumn(ctx, `SELECT productCode FROM products ORDER BY rowId`)
}

func (s *Store) listColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// GetOrderBody returns the raw payload stored for an order, or
// sql.ErrNoRows if the order is unknown.
func (s *Store) GetOrderBody(ctx context.Context, orderID string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT orderBody FROM orders WHERE orderId = ?`, orderID).Scan(&body)
	return body, err
}

// GetProductBody returns the raw payload stored for a product, or
// sql.ErrNoRows if the product is unknown.
func (s *Store) GetProductBody(ctx context.Context, productCode string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT productBody FROM products WHERE productCode = ?`, productCode).Scan(&body)
	return body, err
}

// CountOrders returns the number of stored orders.
func (s *Store) CountOrders(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// CountProducts returns the number of stored products.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
