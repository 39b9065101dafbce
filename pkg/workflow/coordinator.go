package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// Participants bundles the four stage collaborators.
type Participants struct {
	Inventory   Participant
	Quote       Participant
	Customer    Participant
	Fulfillment Participant
}

// Coordinator drives one customer request through the four-stage pipeline:
// stock check, pricing, review, fulfillment. Stages run strictly in order
// because each stage's input derives from the previous stage's parsed output.
// A coordinator holds no per-request state; independent requests may run on
// the same instance concurrently.
type Coordinator struct {
	cfg   *Config
	parts Participants
}

// NewCoordinator wires a coordinator from its configuration and participants.
func NewCoordinator(cfg *Config, parts Participants) (*Coordinator, error) {
	if cfg == nil {
		return nil, errors.New("workflow: config is required")
	}
	if parts.Inventory == nil || parts.Quote == nil || parts.Customer == nil || parts.Fulfillment == nil {
		return nil, errors.New("workflow: all four participants are required")
	}
	return &Coordinator{cfg: cfg, parts: parts}, nil
}

// ProcessRequest runs the full pipeline for one customer request. A failed
// participant call aborts the remaining stages and yields a failure result;
// unparseable participant output never aborts, it degrades to the stage
// default. The returned error is non-nil only on abort, and the failure
// result is still populated so callers can treat both paths uniformly.
func (c *Coordinator) ProcessRequest(ctx context.Context, requestText, requestDate string) (*Result, error) {
	if requestDate == "" {
		requestDate = time.Now().Format("2006-01-02")
	}
	logger := logx.WithContext(ctx)
	result := &Result{}

	logger.Infof("workflow: stock check for request dated %s", requestDate)
	stockRaw, err := c.invoke(ctx, "stock check", c.parts.Inventory, requestText)
	if err != nil {
		return failureResult(result, err), err
	}
	result.Stages = append(result.Stages, StageResponse{Stage: "stock check", Raw: stockRaw})
	stock := ParseStockStatus(stockRaw)

	logger.Info("workflow: pricing")
	quoteContext := fmt.Sprintf("Customer request: %s\nInventory Status: %s", requestText, renderRecord(stock))
	quoteRaw, err := c.invoke(ctx, "pricing", c.parts.Quote, quoteContext)
	if err != nil {
		return failureResult(result, err), err
	}
	result.Stages = append(result.Stages, StageResponse{Stage: "pricing", Raw: quoteRaw})
	quote := ParseQuote(quoteRaw)

	logger.Info("workflow: customer review")
	reviewContext := fmt.Sprintf(
		"Review this quote and decide:\nTotal Price: $%v\nItems: %s\nDiscount: %s",
		quote.TotalPrice, renderRecord(quote.Breakdown), quote.DiscountApplied,
	)
	decisionRaw, err := c.invoke(ctx, "review", c.parts.Customer, reviewContext)
	if err != nil {
		return failureResult(result, err), err
	}
	result.Stages = append(result.Stages, StageResponse{Stage: "review", Raw: decisionRaw})
	decision := ParseDecision(decisionRaw)

	var receiptRaw string
	if decision.Approved() {
		logger.Info("workflow: fulfillment")
		deliveryDate := stock.RestockDate
		if deliveryDate == "" {
			deliveryDate = requestDate
		}
		fulfillContext := fmt.Sprintf(
			"Customer approved the order.\n\nRequest: %s\nQuote Details: Total $%v, Items: %s\nRequest Date: %s\nDelivery Date: %s",
			requestText, quote.TotalPrice, renderRecord(quote.Breakdown), requestDate, deliveryDate,
		)
		receiptRaw, err = c.invoke(ctx, "fulfillment", c.parts.Fulfillment, fulfillContext)
		if err != nil {
			return failureResult(result, err), err
		}
	} else {
		// Declined orders never reach the fulfillment participant. The
		// synthesized text carries no structured payload, so parsing it lands
		// on the pending default and every path yields a normally shaped
		// receipt.
		logger.Info("workflow: order declined, skipping fulfillment")
		receiptRaw = fmt.Sprintf("Customer declined: %s", decision.Reason)
	}
	result.Stages = append(result.Stages, StageResponse{Stage: "fulfillment", Raw: receiptRaw})
	receipt := ParseReceipt(receiptRaw)

	result.Fulfilled, result.Detail = Reconcile(decision, receipt)
	result.Summary = RenderSummary(stock, quote, decision, receipt)
	return result, nil
}

// invoke calls a participant under the configured stage timeout. A call error
// or timeout is an abort-class failure; it is never resolved by fallback
// parsing.
func (c *Coordinator) invoke(ctx context.Context, stage string, p Participant, contextText string) (string, error) {
	callCtx := ctx
	if c.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.StageTimeout)
		defer cancel()
	}
	resp, err := p.Run(callCtx, contextText)
	if err != nil {
		return "", fmt.Errorf("workflow: %s stage: %w", stage, err)
	}
	logx.WithContext(ctx).Debugf("workflow: %s response: %s", stage, resp)
	return resp, nil
}

func failureResult(partial *Result, err error) *Result {
	partial.Summary = fmt.Sprintf("ERROR in order processing: %v", err)
	partial.Fulfilled = false
	partial.Detail = err.Error()
	return partial
}

// renderRecord gives a stable textual rendering of a parsed record for the
// next stage's context.
func renderRecord(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
