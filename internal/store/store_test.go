package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"difflin-api/internal/model"
)

// In-memory stand-ins for the table models.

type fakeInventoryModel struct {
	items []model.Inventory
}

func (f *fakeInventoryModel) Insert(_ context.Context, data *model.Inventory) error {
	f.items = append(f.items, *data)
	return nil
}

func (f *fakeInventoryModel) FindOne(_ context.Context, itemName string) (*model.Inventory, error) {
	for i := range f.items {
		if f.items[i].ItemName == itemName {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeInventoryModel) FindAll(_ context.Context) ([]model.Inventory, error) {
	return f.items, nil
}

func (f *fakeInventoryModel) DeleteAll(_ context.Context) error {
	f.items = nil
	return nil
}

type fakeTransactionsModel struct {
	rows   []model.Transactions
	nextID int64
}

func (f *fakeTransactionsModel) Insert(_ context.Context, data *model.Transactions) (int64, error) {
	f.nextID++
	row := *data
	row.Id = f.nextID
	f.rows = append(f.rows, row)
	return f.nextID, nil
}

func (f *fakeTransactionsModel) StockAsOf(_ context.Context, itemName, asOfDate string) (int64, error) {
	var units int64
	for _, row := range f.rows {
		if !row.ItemName.Valid || row.ItemName.String != itemName || row.TransactionDate > asOfDate {
			continue
		}
		if row.TransactionType == model.TransactionStockOrder {
			units += row.Units.Int64
		} else {
			units -= row.Units.Int64
		}
	}
	return units, nil
}

func (f *fakeTransactionsModel) AllStockAsOf(ctx context.Context, asOfDate string) ([]model.StockRow, error) {
	seen := map[string]bool{}
	var out []model.StockRow
	for _, row := range f.rows {
		if !row.ItemName.Valid || seen[row.ItemName.String] {
			continue
		}
		seen[row.ItemName.String] = true
		units, _ := f.StockAsOf(ctx, row.ItemName.String, asOfDate)
		if units > 0 {
			out = append(out, model.StockRow{ItemName: row.ItemName.String, Units: units})
		}
	}
	return out, nil
}

func (f *fakeTransactionsModel) CashAsOf(_ context.Context, asOfDate string) (float64, error) {
	var cash float64
	for _, row := range f.rows {
		if row.TransactionDate > asOfDate || !row.Price.Valid {
			continue
		}
		if row.TransactionType == model.TransactionSale {
			cash += row.Price.Float64
		} else {
			cash -= row.Price.Float64
		}
	}
	return cash, nil
}

func (f *fakeTransactionsModel) SalesSummaryAsOf(_ context.Context, asOfDate string, limit int) ([]model.SalesRow, error) {
	totals := map[string]*model.SalesRow{}
	for _, row := range f.rows {
		if row.TransactionType != model.TransactionSale || !row.ItemName.Valid || row.TransactionDate > asOfDate {
			continue
		}
		entry, ok := totals[row.ItemName.String]
		if !ok {
			entry = &model.SalesRow{ItemName: row.ItemName.String}
			totals[row.ItemName.String] = entry
		}
		entry.Units += row.Units.Int64
		entry.Revenue += row.Price.Float64
	}
	var out []model.SalesRow
	for _, entry := range totals {
		out = append(out, *entry)
	}
	return out, nil
}

func (f *fakeTransactionsModel) DeleteAll(_ context.Context) error {
	f.rows = nil
	return nil
}

type fakeQuotesModel struct {
	quotes []model.Quotes
}

func (f *fakeQuotesModel) Insert(_ context.Context, data *model.Quotes) error {
	f.quotes = append(f.quotes, *data)
	return nil
}

func (f *fakeQuotesModel) Search(_ context.Context, terms []string, limit int) ([]model.QuoteMatch, error) {
	var out []model.QuoteMatch
	for _, q := range f.quotes {
		for _, term := range terms {
			if strings.Contains(strings.ToLower(q.QuoteExplanation), strings.ToLower(term)) {
				out = append(out, model.QuoteMatch{
					TotalAmount:      q.TotalAmount,
					QuoteExplanation: q.QuoteExplanation,
					JobType:          q.JobType,
				})
				break
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuotesModel) DeleteAll(_ context.Context) error {
	f.quotes = nil
	return nil
}

type fakeQuoteRequestsModel struct{}

func (f *fakeQuoteRequestsModel) Insert(_ context.Context, _ *model.QuoteRequests) error {
	return nil
}
func (f *fakeQuoteRequestsModel) FindOne(_ context.Context, _ int64) (*model.QuoteRequests, error) {
	return nil, model.ErrNotFound
}
func (f *fakeQuoteRequestsModel) DeleteAll(_ context.Context) error { return nil }

func seededStore(t *testing.T) (*Store, *fakeTransactionsModel) {
	t.Helper()
	inventory := &fakeInventoryModel{items: []model.Inventory{
		{ItemName: "A4 paper", Category: "paper", UnitPrice: 0.05, CurrentStock: 500, MinStockLevel: 100},
		{ItemName: "Cardstock", Category: "paper", UnitPrice: 0.15, CurrentStock: 300, MinStockLevel: 50},
	}}
	transactions := &fakeTransactionsModel{}
	quotes := &fakeQuotesModel{quotes: []model.Quotes{
		{RequestId: 1, TotalAmount: 120, QuoteExplanation: "Bulk A4 paper for office move", JobType: "office manager"},
	}}
	s := New(inventory, transactions, quotes, &fakeQuoteRequestsModel{})

	ctx := context.Background()
	// Seed cash and opening stock, mirroring the ledger bootstrap.
	_, err := s.CreateTransaction(ctx, "", model.TransactionSale, 0, 50000, "2025-01-01")
	require.NoError(t, err)
	_, err = s.CreateTransaction(ctx, "A4 paper", model.TransactionStockOrder, 500, 25, "2025-01-01")
	require.NoError(t, err)
	_, err = s.CreateTransaction(ctx, "Cardstock", model.TransactionStockOrder, 300, 45, "2025-01-01")
	require.NoError(t, err)
	return s, transactions
}

func TestCreateTransactionValidation(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.CreateTransaction(context.Background(), "A4 paper", "refunds", 1, 1, "2025-01-02")
	require.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestStockLevelTracksSales(t *testing.T) {
	s, _ := seededStore(t)
	ctx := context.Background()

	units, err := s.StockLevel(ctx, "A4 paper", "2025-01-02")
	require.NoError(t, err)
	require.EqualValues(t, 500, units)

	_, err = s.CreateTransaction(ctx, "A4 paper", model.TransactionSale, 120, 6, "2025-01-03")
	require.NoError(t, err)

	units, err = s.StockLevel(ctx, "A4 paper", "2025-01-03")
	require.NoError(t, err)
	require.EqualValues(t, 380, units)

	// As-of date excludes later sales.
	units, err = s.StockLevel(ctx, "A4 paper", "2025-01-02")
	require.NoError(t, err)
	require.EqualValues(t, 500, units)
}

func TestAllInventory(t *testing.T) {
	s, _ := seededStore(t)

	stock, err := s.AllInventory(context.Background(), "2025-01-02")
	require.NoError(t, err)
	require.EqualValues(t, 500, stock["A4 paper"])
	require.EqualValues(t, 300, stock["Cardstock"])
}

func TestCashBalance(t *testing.T) {
	s, _ := seededStore(t)
	ctx := context.Background()

	cash, err := s.CashBalance(ctx, "2025-01-01")
	require.NoError(t, err)
	require.InDelta(t, 50000-25-45, cash, 0.001)

	_, err = s.CreateTransaction(ctx, "A4 paper", model.TransactionSale, 100, 5, "2025-01-02")
	require.NoError(t, err)

	cash, err = s.CashBalance(ctx, "2025-01-02")
	require.NoError(t, err)
	require.InDelta(t, 50000-25-45+5, cash, 0.001)
}

func TestGenerateReport(t *testing.T) {
	s, _ := seededStore(t)
	ctx := context.Background()

	_, err := s.CreateTransaction(ctx, "A4 paper", model.TransactionSale, 100, 5, "2025-01-02")
	require.NoError(t, err)

	report, err := s.GenerateReport(ctx, "2025-01-02")
	require.NoError(t, err)
	require.Equal(t, "2025-01-02", report.AsOfDate)
	require.InDelta(t, 50000-25-45+5, report.CashBalance, 0.001)
	// 400 reams at 0.05 plus 300 cardstock at 0.15.
	require.InDelta(t, 400*0.05+300*0.15, report.InventoryValue, 0.001)
	require.InDelta(t, report.CashBalance+report.InventoryValue, report.TotalAssets, 0.001)
	require.Len(t, report.TopSellingProduct, 1)
	require.Equal(t, "A4 paper", report.TopSellingProduct[0].ItemName)
}

func TestGenerateQuote(t *testing.T) {
	s, _ := seededStore(t)

	quote, err := s.GenerateQuote(context.Background(),
		[]string{"A4 paper", "Cardstock", "Glitter paper"},
		[]int64{600, 50, 10},
		"2025-01-02")
	require.NoError(t, err)

	// Unknown items are skipped.
	require.Len(t, quote.Lines, 2)

	// 600 units earns the 10% tier.
	a4 := quote.Lines[0]
	require.Equal(t, "A4 paper", a4.Item)
	require.Equal(t, "10%", a4.Discount)
	require.InDelta(t, 0.05*0.9*600, a4.LineTotal, 0.001)

	card := quote.Lines[1]
	require.Equal(t, "0%", card.Discount)
	require.InDelta(t, 0.15*50, card.LineTotal, 0.001)

	require.InDelta(t, a4.LineTotal+card.LineTotal, quote.TotalAmount, 0.001)
}

func TestGenerateQuoteMismatchedInputs(t *testing.T) {
	s, _ := seededStore(t)
	_, err := s.GenerateQuote(context.Background(), []string{"A4 paper"}, []int64{1, 2}, "2025-01-02")
	require.Error(t, err)
}

func TestSearchQuoteHistory(t *testing.T) {
	s, _ := seededStore(t)

	matches, err := s.SearchQuoteHistory(context.Background(), []string{"office"}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Contains(t, matches[0].QuoteExplanation, "office move")
}
