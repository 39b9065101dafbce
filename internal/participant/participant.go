package participant

import (
	"errors"

	"difflin-api/internal/store"
	"difflin-api/pkg/agent"
	"difflin-api/pkg/llm"
	"difflin-api/pkg/prompt"
	"difflin-api/pkg/workflow"
)

// Prompt template names, one per stage.
const (
	PromptInventory   = "inventory"
	PromptQuote       = "quote"
	PromptCustomer    = "customer"
	PromptFulfillment = "fulfillment"
)

// Params collects the shared dependencies of every stage participant.
type Params struct {
	Client   llm.LLMClient
	Store    *store.Store
	Prompts  *prompt.Library
	MaxTurns int
	Model    string
	Logger   llm.Logger
}

func (p Params) validate(needStore bool) error {
	if p.Client == nil {
		return errors.New("participant: llm client is required")
	}
	if p.Prompts == nil {
		return errors.New("participant: prompt library is required")
	}
	if needStore && p.Store == nil {
		return errors.New("participant: store is required")
	}
	return nil
}

func (p Params) agentOptions() []agent.Option {
	var opts []agent.Option
	if p.Model != "" {
		opts = append(opts, agent.WithModel(p.Model))
	}
	if p.MaxTurns > 0 {
		opts = append(opts, agent.WithMaxTurns(p.MaxTurns))
	}
	if p.Logger != nil {
		opts = append(opts, agent.WithLogger(p.Logger))
	}
	return opts
}

// NewInventory builds the stock-checking participant. It can look up live
// stock levels, reorder thresholds, and supplier lead times.
func NewInventory(p Params) (workflow.Participant, error) {
	if err := p.validate(true); err != nil {
		return nil, err
	}
	system, err := p.Prompts.Render(PromptInventory, nil)
	if err != nil {
		return nil, err
	}
	tools := []agent.Tool{
		checkStockTool(p.Store),
		reorderStatusTool(p.Store),
		deliveryDateTool(),
	}
	return agent.New(p.Client, "inventory", system, tools, p.agentOptions()...)
}

// NewQuote builds the pricing participant. It prices orders against the
// catalog with bulk discounts and can consult past quotes.
func NewQuote(p Params) (workflow.Participant, error) {
	if err := p.validate(true); err != nil {
		return nil, err
	}
	system, err := p.Prompts.Render(PromptQuote, nil)
	if err != nil {
		return nil, err
	}
	tools := []agent.Tool{
		quoteHistoryTool(p.Store),
		generateQuoteTool(p.Store),
	}
	return agent.New(p.Client, "quote", system, tools, p.agentOptions()...)
}

// NewCustomer builds the review participant. It plays the customer deciding
// on a quote and needs no tools.
func NewCustomer(p Params) (workflow.Participant, error) {
	if err := p.validate(false); err != nil {
		return nil, err
	}
	system, err := p.Prompts.Render(PromptCustomer, nil)
	if err != nil {
		return nil, err
	}
	return agent.New(p.Client, "customer", system, nil, p.agentOptions()...)
}

// NewFulfillment builds the order-execution participant. It records the sale
// in the ledger and estimates delivery.
func NewFulfillment(p Params) (workflow.Participant, error) {
	if err := p.validate(true); err != nil {
		return nil, err
	}
	system, err := p.Prompts.Render(PromptFulfillment, nil)
	if err != nil {
		return nil, err
	}
	tools := []agent.Tool{
		fulfillOrderTool(p.Store),
		deliveryDateTool(),
	}
	return agent.New(p.Client, "fulfillment", system, tools, p.agentOptions()...)
}

// NewAll builds the full participant set keyed by workflow stage.
func NewAll(base Params, stageModel func(stage string) string) (workflow.Participants, error) {
	build := func(stage string, ctor func(Params) (workflow.Participant, error)) (workflow.Participant, error) {
		p := base
		if stageModel != nil {
			if m := stageModel(stage); m != "" {
				p.Model = m
			}
		}
		return ctor(p)
	}

	inventory, err := build("inventory", NewInventory)
	if err != nil {
		return workflow.Participants{}, err
	}
	quote, err := build("quote", NewQuote)
	if err != nil {
		return workflow.Participants{}, err
	}
	customer, err := build("customer", NewCustomer)
	if err != nil {
		return workflow.Participants{}, err
	}
	fulfillment, err := build("fulfillment", NewFulfillment)
	if err != nil {
		return workflow.Participants{}, err
	}

	return workflow.Participants{
		Inventory:   inventory,
		Quote:       quote,
		Customer:    customer,
		Fulfillment: fulfillment,
	}, nil
}
