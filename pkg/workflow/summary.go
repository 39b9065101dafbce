package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

const summaryRule = "================================================================================"

// RenderSummary produces the fixed-layout report of all four stages' parsed
// records. It is purely presentational; nothing downstream branches on it.
func RenderSummary(stock StockStatus, quote PriceQuote, decision Decision, receipt Receipt) string {
	var b strings.Builder

	b.WriteString("\n" + summaryRule + "\n")
	b.WriteString("                         ORDER PROCESSING COMPLETE\n")
	b.WriteString("                            FINAL SUMMARY\n")
	b.WriteString(summaryRule + "\n\n")

	b.WriteString("STEP 1 - INVENTORY STATUS\n")
	fmt.Fprintf(&b, "  Available Items: %s\n", renderRecord(stock.Items))
	fmt.Fprintf(&b, "  Low Stock Items: %s\n", renderRecord(stock.LowStock))
	fmt.Fprintf(&b, "  Reorder Required: %t\n", stock.ReorderRequired)
	fmt.Fprintf(&b, "  Restock Date: %s\n\n", stock.RestockDate)

	b.WriteString("STEP 2 - PRICING QUOTE\n")
	fmt.Fprintf(&b, "  Total Price: $%.2f\n", quote.TotalPrice)
	fmt.Fprintf(&b, "  Discount Applied: %s\n", quote.DiscountApplied)
	fmt.Fprintf(&b, "  Itemized Breakdown: %s\n\n", renderBreakdown(quote.Breakdown))

	b.WriteString("STEP 3 - CUSTOMER DECISION\n")
	fmt.Fprintf(&b, "  Decision: %s\n", decision.Verdict)
	fmt.Fprintf(&b, "  Reason: %s\n\n", decision.Reason)

	b.WriteString("STEP 4 - ORDER FULFILLMENT\n")
	fmt.Fprintf(&b, "  Status: %s\n", receipt.Status)
	fmt.Fprintf(&b, "  Transaction ID: %s\n", receipt.TransactionID)
	fmt.Fprintf(&b, "  Delivery Date: %s\n\n", receipt.DeliveryDate)

	b.WriteString(summaryRule + "\n")
	b.WriteString("                       END OF ORDER PROCESSING\n")
	b.WriteString(summaryRule + "\n")

	return b.String()
}

func renderBreakdown(lines []QuoteLine) string {
	data, err := json.MarshalIndent(lines, "  ", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", lines)
	}
	return string(data)
}
