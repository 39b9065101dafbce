package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ TransactionsModel = (*customTransactionsModel)(nil)

// Transaction types recorded in the ledger.
const (
	TransactionStockOrder = "stock_orders"
	TransactionSale       = "sales"
)

// Transactions is one ledger row. The seed cash injection carries a null
// item_name and null units, so both are nullable.
type Transactions struct {
	Id              int64           `db:"id"`
	ItemName        sql.NullString  `db:"item_name"`
	TransactionType string          `db:"transaction_type"`
	Units           sql.NullInt64   `db:"units"`
	Price           sql.NullFloat64 `db:"price"`
	TransactionDate string          `db:"transaction_date"`
}

// StockRow aggregates units on hand for one item.
type StockRow struct {
	ItemName string `db:"item_name"`
	Units    int64  `db:"units"`
}

// SalesRow aggregates sales volume and revenue for one item.
type SalesRow struct {
	ItemName string  `db:"item_name"`
	Units    int64   `db:"units"`
	Revenue  float64 `db:"revenue"`
}

type (
	// TransactionsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customTransactionsModel.
	TransactionsModel interface {
		Insert(ctx context.Context, data *Transactions) (int64, error)
		StockAsOf(ctx context.Context, itemName, asOfDate string) (int64, error)
		AllStockAsOf(ctx context.Context, asOfDate string) ([]StockRow, error)
		CashAsOf(ctx context.Context, asOfDate string) (float64, error)
		SalesSummaryAsOf(ctx context.Context, asOfDate string, limit int) ([]SalesRow, error)
		DeleteAll(ctx context.Context) error
	}

	customTransactionsModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewTransactionsModel returns a model for the database table.
func NewTransactionsModel(conn sqlx.SqlConn) TransactionsModel {
	return &customTransactionsModel{
		conn:  conn,
		table: "transactions",
	}
}

// Insert appends one ledger row and returns its generated id.
func (m *customTransactionsModel) Insert(ctx context.Context, data *Transactions) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (item_name, transaction_type, units, price, transaction_date) VALUES ($1, $2, $3, $4, $5) RETURNING id`, m.table)
	var id int64
	err := m.conn.QueryRowCtx(ctx, &id, query,
		data.ItemName, data.TransactionType, data.Units, data.Price, data.TransactionDate)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// StockAsOf computes units on hand for one item up to and including asOfDate:
// stock orders add units, sales subtract them.
func (m *customTransactionsModel) StockAsOf(ctx context.Context, itemName, asOfDate string) (int64, error) {
	query := fmt.Sprintf(`
SELECT COALESCE(SUM(CASE WHEN transaction_type = '%s' THEN units ELSE -units END), 0)
FROM %s
WHERE item_name = $1 AND transaction_date <= $2`, TransactionStockOrder, m.table)

	var units int64
	if err := m.conn.QueryRowCtx(ctx, &units, query, itemName, asOfDate); err != nil {
		return 0, err
	}
	return units, nil
}

// AllStockAsOf computes units on hand per item up to and including asOfDate,
// keeping only items with positive stock.
func (m *customTransactionsModel) AllStockAsOf(ctx context.Context, asOfDate string) ([]StockRow, error) {
	query := fmt.Sprintf(`
SELECT item_name,
       COALESCE(SUM(CASE WHEN transaction_type = '%s' THEN units ELSE -units END), 0) AS units
FROM %s
WHERE item_name IS NOT NULL AND transaction_date <= $1
GROUP BY item_name
HAVING COALESCE(SUM(CASE WHEN transaction_type = '%s' THEN units ELSE -units END), 0) > 0
ORDER BY item_name`, TransactionStockOrder, m.table, TransactionStockOrder)

	var rows []StockRow
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, asOfDate); err != nil {
		return nil, err
	}
	return rows, nil
}

// CashAsOf computes the cash balance up to and including asOfDate: sales add
// to cash, stock orders draw it down.
func (m *customTransactionsModel) CashAsOf(ctx context.Context, asOfDate string) (float64, error) {
	query := fmt.Sprintf(`
SELECT COALESCE(SUM(CASE WHEN transaction_type = '%s' THEN price ELSE -price END), 0)
FROM %s
WHERE transaction_date <= $1`, TransactionSale, m.table)

	var cash float64
	if err := m.conn.QueryRowCtx(ctx, &cash, query, asOfDate); err != nil {
		return 0, err
	}
	return cash, nil
}

// SalesSummaryAsOf lists top-selling items by revenue up to asOfDate.
func (m *customTransactionsModel) SalesSummaryAsOf(ctx context.Context, asOfDate string, limit int) ([]SalesRow, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`
SELECT item_name,
       COALESCE(SUM(units), 0) AS units,
       COALESCE(SUM(price), 0) AS revenue
FROM %s
WHERE transaction_type = '%s' AND item_name IS NOT NULL AND transaction_date <= $1
GROUP BY item_name
ORDER BY revenue DESC
LIMIT $2`, m.table, TransactionSale)

	var rows []SalesRow
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, asOfDate, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *customTransactionsModel) DeleteAll(ctx context.Context) error {
	_, err := m.conn.ExecCtx(ctx, fmt.Sprintf(`DELETE FROM %s`, m.table))
	return err
}
