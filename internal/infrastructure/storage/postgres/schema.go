package postgres

import (
	"context"
	"fmt"

	"skuflow/pkg/logger"
)

// schemaStatements creates the relational model for the feed data. Statements
// are idempotent and ordered so foreign keys resolve.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		date_of_birth DATE,
		email VARCHAR(255) NOT NULL,
		phone_number VARCHAR(75),
		address VARCHAR(255),
		city VARCHAR(100),
		country VARCHAR(75),
		postcode VARCHAR(75),
		last_change TIMESTAMP,
		segment VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		sku INTEGER PRIMARY KEY,
		name VARCHAR(255),
		price NUMERIC CHECK(price > 0),
		category TEXT,
		popularity REAL CHECK(popularity > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id uuid PRIMARY KEY,
		transaction_time TIMESTAMP,
		customer_id INTEGER,
		delivery_address VARCHAR(255),
		delivery_postcode VARCHAR(15),
		delivery_city VARCHAR(100),
		delivery_country VARCHAR(50),
		transaction_cost NUMERIC,
		FOREIGN KEY(customer_id) REFERENCES customers(id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactionlines (
		transaction_id uuid NOT NULL,
		transline_no INTEGER NOT NULL,
		transline_sku INTEGER,
		transline_quantity INTEGER,
		transline_price NUMERIC,
		transline_total NUMERIC,
		FOREIGN KEY(transaction_id) REFERENCES transactions(transaction_id),
		FOREIGN KEY(transline_sku) REFERENCES products(sku),
		PRIMARY KEY (transaction_id, transline_no)
	)`,
	`CREATE TABLE IF NOT EXISTS erasures (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER,
		email VARCHAR(255),
		CONSTRAINT id_or_email_present CHECK(customer_id IS NOT NULL OR email IS NOT NULL)
	)`,
	`CREATE TABLE IF NOT EXISTS errorlog (
		error_id SERIAL PRIMARY KEY,
		table_name VARCHAR,
		record_id VARCHAR,
		payload VARCHAR,
		error VARCHAR
	)`,
}

// EnsureSchema creates all tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Debug(ctx, "database schema ensured")
	return nil
}
