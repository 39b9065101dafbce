package workflow

import (
	"context"
	"strings"
)

// Customer verdicts.
const (
	VerdictApprove = "APPROVE"
	VerdictDecline = "DECLINE"
)

// Fulfillment receipt statuses. "success" is the only status the fulfillment
// participant is contractually expected to emit on a completed sale.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPending = "pending"
)

// Participant is an opaque text-in/text-out collaborator invoked once per
// stage. Implementations are typically LLM-backed agents; the coordinator
// never assumes anything about the shape of the returned text.
type Participant interface {
	Run(ctx context.Context, contextText string) (string, error)
}

// StockStatus is the parsed output of the stock-check stage.
type StockStatus struct {
	Items           map[string]int `json:"items"`
	LowStock        []string       `json:"low_stock"`
	ReorderRequired bool           `json:"reorder_required"`
	RestockDate     string         `json:"restock_date,omitempty"`
}

// QuoteLine is a single entry of the pricing breakdown.
type QuoteLine struct {
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// PriceQuote is the parsed output of the pricing stage.
type PriceQuote struct {
	TotalPrice      float64     `json:"total_price"`
	Breakdown       []QuoteLine `json:"itemized_breakdown"`
	DiscountApplied string      `json:"discount_applied"`
}

// Decision is the parsed output of the review stage.
type Decision struct {
	Verdict string `json:"decision"`
	Reason  string `json:"reason"`
}

// Approved reports whether the verdict reads as an approval.
func (d Decision) Approved() bool {
	return strings.EqualFold(strings.TrimSpace(d.Verdict), VerdictApprove)
}

// Receipt is the parsed output of the fulfillment stage.
type Receipt struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	DeliveryDate  string `json:"delivery_date"`
}

// StageResponse records the raw text a stage produced, for audit trails.
type StageResponse struct {
	Stage string
	Raw   string
}

// Result is the outcome of one end-to-end request.
type Result struct {
	Summary   string
	Fulfilled bool
	Detail    string
	Stages    []StageResponse
}

// DefaultStockStatus is the documented fallback when the stock-check response
// carries no usable payload.
func DefaultStockStatus() StockStatus {
	return StockStatus{Items: map[string]int{}, LowStock: []string{}}
}

// DefaultQuote is the documented fallback for the pricing stage.
func DefaultQuote() PriceQuote {
	return PriceQuote{Breakdown: []QuoteLine{}, DiscountApplied: "0%"}
}

// DefaultDecision is the documented fallback for the review stage. Orders
// never proceed to fulfillment on an unparseable decision.
func DefaultDecision() Decision {
	return Decision{Verdict: VerdictDecline, Reason: "Unable to parse decision"}
}

// DefaultReceipt is the documented fallback for the fulfillment stage.
// "pending" is deliberately distinguishable from both "success" and "error".
func DefaultReceipt() Receipt {
	return Receipt{Status: StatusPending, TransactionID: "N/A", DeliveryDate: "TBD"}
}
