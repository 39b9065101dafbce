package workflow

import (
	"strings"

	"difflin-api/pkg/extract"
)

// Stage parsers are total functions: they never return an error, only the
// stage's documented default when the response carries nothing usable. Shape
// checks are explicit field-by-field tests; no decode failure crosses this
// boundary.

// ParseStockStatus parses a stock-check response.
func ParseStockStatus(raw string) StockStatus {
	payload, err := extract.Structured(raw)
	if err != nil {
		return DefaultStockStatus()
	}
	status, ok := tryStockStatus(payload)
	if !ok {
		return DefaultStockStatus()
	}
	return status
}

func tryStockStatus(payload map[string]any) (StockStatus, bool) {
	status := DefaultStockStatus()

	// items and low_stock are coerced to empty when absent; a present key with
	// the wrong shape is a mismatch.
	if v, present := payload["items"]; present && v != nil {
		items, ok := toIntMap(v)
		if !ok {
			return status, false
		}
		status.Items = items
	}
	if v, present := payload["low_stock"]; present && v != nil {
		low, ok := toStringList(v)
		if !ok {
			return status, false
		}
		status.LowStock = low
	}

	v, present := payload["reorder_required"]
	if !present {
		return status, false
	}
	reorder, ok := v.(bool)
	if !ok {
		return status, false
	}
	status.ReorderRequired = reorder

	if v, present := payload["restock_date"]; present && v != nil {
		date, ok := v.(string)
		if !ok {
			return status, false
		}
		status.RestockDate = date
	}
	return status, true
}

// ParseQuote parses a pricing response.
func ParseQuote(raw string) PriceQuote {
	payload, err := extract.Structured(raw)
	if err != nil {
		return DefaultQuote()
	}
	quote, ok := tryQuote(payload)
	if !ok {
		return DefaultQuote()
	}
	return quote
}

func tryQuote(payload map[string]any) (PriceQuote, bool) {
	quote := DefaultQuote()

	total, ok := toFloat(payload["total_price"])
	if !ok {
		return quote, false
	}
	rawList, ok := payload["itemized_breakdown"].([]any)
	if !ok {
		return quote, false
	}
	discount, ok := payload["discount_applied"].(string)
	if !ok {
		return quote, false
	}

	lines := make([]QuoteLine, 0, len(rawList))
	for _, entry := range rawList {
		// The breakdown shape is advisory; keep whatever fields decode.
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var line QuoteLine
		if item, ok := m["item"].(string); ok {
			line.Item = item
		}
		if qty, ok := toFloat(m["qty"]); ok {
			line.Qty = int(qty)
		}
		if price, ok := toFloat(m["price"]); ok {
			line.Price = price
		}
		lines = append(lines, line)
	}

	quote.TotalPrice = total
	quote.Breakdown = lines
	quote.DiscountApplied = discount
	return quote, true
}

// ParseDecision parses a review response. Two tiers: a structured payload
// carrying a "decision" key wins; otherwise the literal DECISION: lines are
// scanned case-insensitively. A structured payload with a decision key but a
// broken shape ends parsing at the default, it does not fall through to the
// line scan.
func ParseDecision(raw string) Decision {
	if payload, err := extract.Structured(raw); err == nil {
		if _, present := payload["decision"]; present {
			if decision, ok := tryDecision(payload); ok {
				return decision
			}
			return DefaultDecision()
		}
	}

	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "DECISION: APPROVE") {
		return Decision{Verdict: VerdictApprove, Reason: secondLine(raw, "Approved")}
	}
	if strings.Contains(upper, "DECISION: DECLINE") {
		return Decision{Verdict: VerdictDecline, Reason: secondLine(raw, "Declined")}
	}
	return DefaultDecision()
}

func tryDecision(payload map[string]any) (Decision, bool) {
	verdict, ok := payload["decision"].(string)
	if !ok {
		return Decision{}, false
	}
	reason, ok := payload["reason"].(string)
	if !ok {
		return Decision{}, false
	}
	return Decision{Verdict: verdict, Reason: reason}, true
}

// secondLine returns the line immediately following the first line, or the
// fallback when the response is a single line.
func secondLine(raw, fallback string) string {
	i := strings.Index(raw, "\n")
	if i < 0 {
		return fallback
	}
	rest := raw[i+1:]
	if j := strings.Index(rest, "\n"); j >= 0 {
		return rest[:j]
	}
	return rest
}

// ParseReceipt parses a fulfillment response.
func ParseReceipt(raw string) Receipt {
	payload, err := extract.Structured(raw)
	if err != nil {
		return DefaultReceipt()
	}
	receipt, ok := tryReceipt(payload)
	if !ok {
		return DefaultReceipt()
	}
	return receipt
}

func tryReceipt(payload map[string]any) (Receipt, bool) {
	status, ok := payload["status"].(string)
	if !ok {
		return Receipt{}, false
	}
	txID, ok := payload["transaction_id"].(string)
	if !ok {
		return Receipt{}, false
	}
	delivery, ok := payload["delivery_date"].(string)
	if !ok {
		return Receipt{}, false
	}
	return Receipt{Status: status, TransactionID: txID, DeliveryDate: delivery}, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toIntMap(v any) (map[string]int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(m))
	for k, raw := range m {
		f, ok := toFloat(raw)
		if !ok {
			return nil, false
		}
		out[k] = int(f)
	}
	return out, true
}

func toStringList(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, raw := range list {
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
