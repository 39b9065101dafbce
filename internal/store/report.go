package store

import (
	"context"

	"difflin-api/internal/model"
)

// InventoryLine is one priced stock position in a financial report.
type InventoryLine struct {
	ItemName string  `json:"item_name"`
	Units    int64   `json:"units"`
	Value    float64 `json:"value"`
}

// FinancialReport is a point-in-time snapshot of the business.
type FinancialReport struct {
	AsOfDate          string           `json:"as_of_date"`
	CashBalance       float64          `json:"cash_balance"`
	InventoryValue    float64          `json:"inventory_value"`
	TotalAssets       float64          `json:"total_assets"`
	Inventory         []InventoryLine  `json:"inventory"`
	TopSellingProduct []model.SalesRow `json:"top_selling_products"`
}

// GenerateReport assembles a financial snapshot as of the given date: cash
// from the ledger, stock priced at catalog unit prices, and top sellers by
// revenue.
func (s *Store) GenerateReport(ctx context.Context, asOfDate string) (*FinancialReport, error) {
	cash, err := s.transactions.CashAsOf(ctx, asOfDate)
	if err != nil {
		return nil, err
	}

	stock, err := s.transactions.AllStockAsOf(ctx, asOfDate)
	if err != nil {
		return nil, err
	}
	catalog, err := s.inventory.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ItemName] = item.UnitPrice
	}

	var inventoryValue float64
	lines := make([]InventoryLine, 0, len(stock))
	for _, row := range stock {
		value := float64(row.Units) * prices[row.ItemName]
		inventoryValue += value
		lines = append(lines, InventoryLine{
			ItemName: row.ItemName,
			Units:    row.Units,
			Value:    value,
		})
	}

	topSellers, err := s.transactions.SalesSummaryAsOf(ctx, asOfDate, 5)
	if err != nil {
		return nil, err
	}

	return &FinancialReport{
		AsOfDate:          asOfDate,
		CashBalance:       cash,
		InventoryValue:    inventoryValue,
		TotalAssets:       cash + inventoryValue,
		Inventory:         lines,
		TopSellingProduct: topSellers,
	}, nil
}
