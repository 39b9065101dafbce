package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ InventoryModel = (*customInventoryModel)(nil)

// Inventory mirrors a row of the inventory reference table. Stock here is the
// seeded snapshot; live stock levels come from the transaction ledger.
type Inventory struct {
	ItemName      string  `db:"item_name"`
	Category      string  `db:"category"`
	UnitPrice     float64 `db:"unit_price"`
	CurrentStock  int64   `db:"current_stock"`
	MinStockLevel int64   `db:"min_stock_level"`
}

type (
	// InventoryModel is an interface to be customized, add more methods here,
	// and implement the added methods in customInventoryModel.
	InventoryModel interface {
		Insert(ctx context.Context, data *Inventory) error
		FindOne(ctx context.Context, itemName string) (*Inventory, error)
		FindAll(ctx context.Context) ([]Inventory, error)
		DeleteAll(ctx context.Context) error
	}

	customInventoryModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewInventoryModel returns a model for the database table.
func NewInventoryModel(conn sqlx.SqlConn) InventoryModel {
	return &customInventoryModel{
		conn:  conn,
		table: "inventory",
	}
}

func (m *customInventoryModel) Insert(ctx context.Context, data *Inventory) error {
	query := fmt.Sprintf(`INSERT INTO %s (item_name, category, unit_price, current_stock, min_stock_level) VALUES ($1, $2, $3, $4, $5)`, m.table)
	_, err := m.conn.ExecCtx(ctx, query, data.ItemName, data.Category, data.UnitPrice, data.CurrentStock, data.MinStockLevel)
	return err
}

func (m *customInventoryModel) FindOne(ctx context.Context, itemName string) (*Inventory, error) {
	query := fmt.Sprintf(`SELECT item_name, category, unit_price, current_stock, min_stock_level FROM %s WHERE item_name = $1 LIMIT 1`, m.table)
	var resp Inventory
	err := m.conn.QueryRowCtx(ctx, &resp, query, itemName)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customInventoryModel) FindAll(ctx context.Context) ([]Inventory, error) {
	query := fmt.Sprintf(`SELECT item_name, category, unit_price, current_stock, min_stock_level FROM %s ORDER BY item_name`, m.table)
	var resp []Inventory
	if err := m.conn.QueryRowsCtx(ctx, &resp, query); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *customInventoryModel) DeleteAll(ctx context.Context) error {
	_, err := m.conn.ExecCtx(ctx, fmt.Sprintf(`DELETE FROM %s`, m.table))
	return err
}
