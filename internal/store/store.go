package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"difflin-api/internal/model"
)

// ErrInvalidTransactionType is returned when a transaction type is neither
// stock_orders nor sales.
var ErrInvalidTransactionType = errors.New("store: transaction type must be 'stock_orders' or 'sales'")

// Store exposes the business operations over the order ledger and the
// inventory catalog.
type Store struct {
	inventory     model.InventoryModel
	transactions  model.TransactionsModel
	quotes        model.QuotesModel
	quoteRequests model.QuoteRequestsModel
}

// New assembles a Store from its table models.
func New(inventory model.InventoryModel, transactions model.TransactionsModel,
	quotes model.QuotesModel, quoteRequests model.QuoteRequestsModel) *Store {
	return &Store{
		inventory:     inventory,
		transactions:  transactions,
		quotes:        quotes,
		quoteRequests: quoteRequests,
	}
}

// StockLevel returns the units on hand for an item as of the given date,
// derived from the transaction ledger.
func (s *Store) StockLevel(ctx context.Context, itemName, asOfDate string) (int64, error) {
	return s.transactions.StockAsOf(ctx, itemName, asOfDate)
}

// AllInventory maps each item with positive stock to its units on hand as of
// the given date.
func (s *Store) AllInventory(ctx context.Context, asOfDate string) (map[string]int64, error) {
	rows, err := s.transactions.AllStockAsOf(ctx, asOfDate)
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.ItemName] = row.Units
	}
	return result, nil
}

// ItemDetails returns the catalog entry for an item, including its unit price
// and minimum stock level.
func (s *Store) ItemDetails(ctx context.Context, itemName string) (*model.Inventory, error) {
	return s.inventory.FindOne(ctx, itemName)
}

// Catalog returns the full inventory reference table.
func (s *Store) Catalog(ctx context.Context) ([]model.Inventory, error) {
	return s.inventory.FindAll(ctx)
}

// CreateTransaction validates and records one ledger entry, returning the new
// transaction id.
func (s *Store) CreateTransaction(ctx context.Context, itemName, transactionType string, units int64, price float64, date string) (int64, error) {
	if transactionType != model.TransactionStockOrder && transactionType != model.TransactionSale {
		return 0, ErrInvalidTransactionType
	}

	row := &model.Transactions{
		TransactionType: transactionType,
		TransactionDate: date,
		Units:           sql.NullInt64{Int64: units, Valid: true},
		Price:           sql.NullFloat64{Float64: price, Valid: true},
	}
	if itemName != "" {
		row.ItemName = sql.NullString{String: itemName, Valid: true}
	}

	id, err := s.transactions.Insert(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("store: record %s transaction: %w", transactionType, err)
	}
	return id, nil
}

// SearchQuoteHistory looks up past quotes matching any of the search terms.
func (s *Store) SearchQuoteHistory(ctx context.Context, terms []string, limit int) ([]model.QuoteMatch, error) {
	return s.quotes.Search(ctx, terms, limit)
}

// CashBalance returns the cash position as of the given date.
func (s *Store) CashBalance(ctx context.Context, asOfDate string) (float64, error) {
	return s.transactions.CashAsOf(ctx, asOfDate)
}

// InventoryValue prices the stock on hand at catalog unit prices as of the
// given date. Items missing from the catalog contribute nothing.
func (s *Store) InventoryValue(ctx context.Context, asOfDate string) (float64, error) {
	stock, err := s.transactions.AllStockAsOf(ctx, asOfDate)
	if err != nil {
		return 0, err
	}
	catalog, err := s.inventory.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	prices := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ItemName] = item.UnitPrice
	}

	var total float64
	for _, row := range stock {
		total += float64(row.Units) * prices[row.ItemName]
	}
	return total, nil
}
