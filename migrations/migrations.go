package migrations

import "database/sql"

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			rowId INTEGER PRIMARY KEY ASC,
			orderId TEXT NOT NULL UNIQUE,
			orderBody TEXT NOT NULL
		);
	`
	_, err := db.Exec(query)
	return err
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			rowId INTEGER PRIMARY KEY ASC,
			productCode TEXT NOT NULL UNIQUE,
			productBody TEXT NOT NULL
		);
	`
	_, err := db.Exec(query)
	return err
}
