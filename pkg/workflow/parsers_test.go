package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStockStatus(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		raw := `{"items":{"A4":500,"Letter":120},"low_stock":["Letter"],"reorder_required":true,"restock_date":"2025-02-01"}`
		status := ParseStockStatus(raw)
		require.Equal(t, map[string]int{"A4": 500, "Letter": 120}, status.Items)
		require.Equal(t, []string{"Letter"}, status.LowStock)
		require.True(t, status.ReorderRequired)
		require.Equal(t, "2025-02-01", status.RestockDate)
	})

	t.Run("missing items and low_stock are coerced empty", func(t *testing.T) {
		status := ParseStockStatus(`{"reorder_required":false}`)
		require.Equal(t, DefaultStockStatus().Items, status.Items)
		require.Equal(t, DefaultStockStatus().LowStock, status.LowStock)
		require.False(t, status.ReorderRequired)
	})

	t.Run("missing reorder_required falls back to default", func(t *testing.T) {
		status := ParseStockStatus(`{"items":{"A4":10},"low_stock":[]}`)
		require.Equal(t, DefaultStockStatus(), status)
	})

	t.Run("wrong item value type falls back to default", func(t *testing.T) {
		status := ParseStockStatus(`{"items":{"A4":"lots"},"low_stock":[],"reorder_required":false}`)
		require.Equal(t, DefaultStockStatus(), status)
	})

	t.Run("no payload", func(t *testing.T) {
		for _, raw := range []string{"", "no braces here", "unmatched {"} {
			require.Equal(t, DefaultStockStatus(), ParseStockStatus(raw))
		}
	})

	t.Run("null restock_date is tolerated", func(t *testing.T) {
		status := ParseStockStatus(`{"items":{},"low_stock":[],"reorder_required":false,"restock_date":null}`)
		require.Equal(t, "", status.RestockDate)
		require.False(t, status.ReorderRequired)
	})
}

func TestParseQuote(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		raw := `{"total_price":250.0,"itemized_breakdown":[{"item":"A4","qty":50,"price":250.0}],"discount_applied":"0%"}`
		quote := ParseQuote(raw)
		require.Equal(t, 250.0, quote.TotalPrice)
		require.Len(t, quote.Breakdown, 1)
		require.Equal(t, QuoteLine{Item: "A4", Qty: 50, Price: 250.0}, quote.Breakdown[0])
		require.Equal(t, "0%", quote.DiscountApplied)
	})

	t.Run("missing total_price falls back to default", func(t *testing.T) {
		quote := ParseQuote(`{"itemized_breakdown":[],"discount_applied":"5%"}`)
		require.Equal(t, DefaultQuote(), quote)
	})

	t.Run("breakdown entries decode leniently", func(t *testing.T) {
		raw := `{"total_price":10,"itemized_breakdown":[{"item":"A4"},{"qty":3,"price":6.0}],"discount_applied":"0%"}`
		quote := ParseQuote(raw)
		require.Len(t, quote.Breakdown, 2)
		require.Equal(t, "A4", quote.Breakdown[0].Item)
		require.Equal(t, 3, quote.Breakdown[1].Qty)
	})

	t.Run("no payload", func(t *testing.T) {
		require.Equal(t, DefaultQuote(), ParseQuote("sorry, cannot quote this"))
		require.Equal(t, DefaultQuote(), ParseQuote(""))
	})
}

func TestParseDecision(t *testing.T) {
	t.Run("structured payload", func(t *testing.T) {
		decision := ParseDecision(`{"decision":"APPROVE","reason":"fair price"}`)
		require.Equal(t, VerdictApprove, decision.Verdict)
		require.Equal(t, "fair price", decision.Reason)
		require.True(t, decision.Approved())
	})

	t.Run("structured form wins over literal lines", func(t *testing.T) {
		raw := "DECISION: APPROVE\nsome stray second line\n{\"decision\":\"APPROVE\",\"reason\":\"structured reason\"}"
		decision := ParseDecision(raw)
		require.Equal(t, "structured reason", decision.Reason)
	})

	t.Run("structured payload with decision key but broken shape ends at default", func(t *testing.T) {
		// Has a decision key but no reason; the literal line below must not
		// rescue it.
		raw := "{\"decision\":\"APPROVE\"}\nDECISION: APPROVE\nbecause I like it"
		require.Equal(t, DefaultDecision(), ParseDecision(raw))
	})

	t.Run("approve line with reason on second line", func(t *testing.T) {
		decision := ParseDecision("DECISION: APPROVE\nREASON: price is fair")
		require.Equal(t, VerdictApprove, decision.Verdict)
		require.Equal(t, "REASON: price is fair", decision.Reason)
	})

	t.Run("decline line single-line uses placeholder", func(t *testing.T) {
		decision := ParseDecision("DECISION: DECLINE")
		require.Equal(t, VerdictDecline, decision.Verdict)
		require.Equal(t, "Declined", decision.Reason)
	})

	t.Run("case-insensitive line scan", func(t *testing.T) {
		decision := ParseDecision("decision: approve\nthe quote works for us")
		require.Equal(t, VerdictApprove, decision.Verdict)
		require.Equal(t, "the quote works for us", decision.Reason)
	})

	t.Run("unparseable text defaults to decline", func(t *testing.T) {
		decision := ParseDecision("I will think about it")
		require.Equal(t, DefaultDecision(), decision)
		require.False(t, decision.Approved())
	})

	t.Run("empty string", func(t *testing.T) {
		require.Equal(t, DefaultDecision(), ParseDecision(""))
	})
}

func TestParseReceipt(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		receipt := ParseReceipt(`{"status":"success","transaction_id":"1001","delivery_date":"2025-01-05"}`)
		require.Equal(t, Receipt{Status: "success", TransactionID: "1001", DeliveryDate: "2025-01-05"}, receipt)
	})

	t.Run("missing key falls back to pending default", func(t *testing.T) {
		receipt := ParseReceipt(`{"status":"success","transaction_id":"1001"}`)
		require.Equal(t, DefaultReceipt(), receipt)
	})

	t.Run("synthesized decline text yields pending default", func(t *testing.T) {
		receipt := ParseReceipt("Customer declined: too expensive")
		require.Equal(t, DefaultReceipt(), receipt)
	})

	t.Run("empty string", func(t *testing.T) {
		require.Equal(t, DefaultReceipt(), ParseReceipt(""))
	})
}
