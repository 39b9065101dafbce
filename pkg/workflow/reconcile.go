package workflow

import (
	"fmt"
	"strings"
)

// Reconcile decides whether a request counts as fulfilled from the final
// receipt and the customer's decision, and renders the detail string the
// caller reports.
//
// A "success" receipt is fulfilled regardless of the verdict. Otherwise the
// order counts as fulfilled when it was approved and the receipt is anything
// other than the "pending" default — which means an approved order with an
// "error" receipt still reports fulfilled=true. That expression is kept
// verbatim for compatibility with the historical behaviour; it is flagged as a
// probable defect in DESIGN.md rather than corrected here.
func Reconcile(decision Decision, receipt Receipt) (bool, string) {
	if strings.EqualFold(receipt.Status, StatusSuccess) {
		return true, fmt.Sprintf(
			"Order fulfilled with Transaction ID: %s, Delivery: %s",
			receipt.TransactionID, receipt.DeliveryDate,
		)
	}

	fulfilled := decision.Approved() && !strings.EqualFold(receipt.Status, StatusPending)
	return fulfilled, fmt.Sprintf("Status: %s, Transaction: %s", receipt.Status, receipt.TransactionID)
}
