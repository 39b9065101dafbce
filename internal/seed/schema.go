package seed

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	item_name TEXT,
	transaction_type TEXT NOT NULL,
	units BIGINT,
	price DOUBLE PRECISION,
	transaction_date TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS inventory (
	item_name TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	unit_price DOUBLE PRECISION NOT NULL,
	current_stock BIGINT NOT NULL,
	min_stock_level BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS quote_requests (
	id BIGINT PRIMARY KEY,
	request TEXT NOT NULL,
	job_type TEXT NOT NULL DEFAULT '',
	order_size TEXT NOT NULL DEFAULT '',
	event_type TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS quotes (
	request_id BIGINT NOT NULL,
	total_amount DOUBLE PRECISION NOT NULL,
	quote_explanation TEXT NOT NULL,
	order_date TEXT NOT NULL,
	job_type TEXT NOT NULL DEFAULT '',
	order_size TEXT NOT NULL DEFAULT '',
	event_type TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_item_date ON transactions (item_name, transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_request ON quotes (request_id)`,
}

// EnsureSchema creates the tables and indexes when absent.
func (s *Seeder) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.conn.ExecCtx(ctx, stmt); err != nil {
			return fmt.Errorf("seed: ensure schema: %w", err)
		}
	}
	return nil
}
