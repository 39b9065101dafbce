package store

import (
	"context"
	"fmt"
	"time"
)

// DiscountRate returns the bulk discount applied to a line of the given
// quantity: 15% above 1000 units, 10% above 500, 5% above 100.
func DiscountRate(quantity int64) float64 {
	switch {
	case quantity > 1000:
		return 0.15
	case quantity > 500:
		return 0.10
	case quantity > 100:
		return 0.05
	default:
		return 0
	}
}

// SupplierDeliveryDate estimates when a restock order placed on orderDate
// arrives. Lead time scales with order size: 1 day up to 10 units, 4 days up
// to 100, 7 days up to 1000, 14 days beyond that. An unparseable date falls
// back to the raw input.
func SupplierDeliveryDate(orderDate string, quantity int64) string {
	placed, err := time.Parse("2006-01-02", orderDate)
	if err != nil {
		return orderDate
	}

	var leadDays int
	switch {
	case quantity <= 10:
		leadDays = 1
	case quantity <= 100:
		leadDays = 4
	case quantity <= 1000:
		leadDays = 7
	default:
		leadDays = 14
	}
	return placed.AddDate(0, 0, leadDays).Format("2006-01-02")
}

// QuoteLine is one priced line of a generated quote.
type QuoteLine struct {
	Item      string  `json:"item"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  string  `json:"discount"`
	LineTotal float64 `json:"item_total"`
}

// GeneratedQuote is a priced order with per-line bulk discounts applied.
type GeneratedQuote struct {
	Lines       []QuoteLine `json:"quote_items"`
	TotalAmount float64     `json:"total_amount"`
	QuoteDate   string      `json:"quote_date"`
}

// GenerateQuote prices the requested items at catalog unit prices with bulk
// discounts. Items absent from the catalog are skipped.
func (s *Store) GenerateQuote(ctx context.Context, items []string, quantities []int64, quoteDate string) (*GeneratedQuote, error) {
	if len(items) != len(quantities) {
		return nil, fmt.Errorf("store: %d items but %d quantities", len(items), len(quantities))
	}

	catalog, err := s.inventory.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ItemName] = item.UnitPrice
	}

	quote := &GeneratedQuote{QuoteDate: quoteDate}
	for i, item := range items {
		unitPrice, ok := prices[item]
		if !ok {
			continue
		}
		qty := quantities[i]
		discount := DiscountRate(qty)
		lineTotal := unitPrice * (1 - discount) * float64(qty)
		quote.TotalAmount += lineTotal
		quote.Lines = append(quote.Lines, QuoteLine{
			Item:      item,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Discount:  fmt.Sprintf("%.0f%%", discount*100),
			LineTotal: lineTotal,
		})
	}
	return quote, nil
}
