package participant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"difflin-api/internal/model"
	"difflin-api/internal/store"
	"difflin-api/pkg/agent"
)

func checkStockTool(s *store.Store) agent.Tool {
	return agent.Tool{
		Name:        "check_stock",
		Description: "Look up current stock levels for the named items as of a date",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"items":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"as_of_date": map[string]interface{}{"type": "string", "description": "ISO date YYYY-MM-DD"},
			},
			"required": []string{"items", "as_of_date"},
		},
		Call: func(ctx context.Context, args map[string]interface{}) (string, error) {
			items := argStrings(args, "items")
			asOf := argString(args, "as_of_date")
			if len(items) == 0 || asOf == "" {
				return "", fmt.Errorf("check_stock needs items and as_of_date")
			}

			levels := make(map[string]int64, len(items))
			for _, item := range items {
				units, err := s.StockLevel(ctx, item, asOf)
				if err != nil {
					return "", err
				}
				levels[item] = units
			}
			return encodeJSON(levels)
		},
	}
}

func reorderStatusTool(s *store.Store) agent.Tool {
	type status struct {
		CurrentStock  int64  `json:"current_stock"`
		MinStockLevel int64  `json:"min_stock_level"`
		NeedsReorder  bool   `json:"needs_reorder"`
		Shortage      int64  `json:"shortage"`
		Error         string `json:"error,omitempty"`
	}
	return agent.Tool{
		Name:        "check_reorder_status",
		Description: "Check whether the named items are below their minimum stock thresholds",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"items":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"as_of_date": map[string]interface{}{"type": "string"},
			},
			"required": []string{"items", "as_of_date"},
		},
		Call: func(ctx context.Context, args map[string]interface{}) (string, error) {
			items := argStrings(args, "items")
			asOf := argString(args, "as_of_date")
			if len(items) == 0 || asOf == "" {
				return "", fmt.Errorf("check_reorder_status needs items and as_of_date")
			}

			result := make(map[string]status, len(items))
			for _, item := range items {
				details, err := s.ItemDetails(ctx, item)
				if err == model.ErrNotFound {
					result[item] = status{Error: fmt.Sprintf("item %q not found in catalog", item)}
					continue
				}
				if err != nil {
					return "", err
				}
				units, err := s.StockLevel(ctx, item, asOf)
				if err != nil {
					return "", err
				}
				shortage := details.MinStockLevel - units
				if shortage < 0 {
					shortage = 0
				}
				result[item] = status{
					CurrentStock:  units,
					MinStockLevel: details.MinStockLevel,
					NeedsReorder:  units < details.MinStockLevel,
					Shortage:      shortage,
				}
			}
			return encodeJSON(result)
		},
	}
}

func deliveryDateTool() agent.Tool {
	return agent.Tool{
		Name:        "supplier_delivery_date",
		Description: "Estimate when a supplier order of the given size arrives",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"order_date": map[string]interface{}{"type": "string", "description": "ISO date YYYY-MM-DD"},
				"quantity":   map[string]interface{}{"type": "integer"},
			},
			"required": []string{"order_date", "quantity"},
		},
		Call: func(_ context.Context, args map[string]interface{}) (string, error) {
			orderDate := argString(args, "order_date")
			if orderDate == "" {
				return "", fmt.Errorf("supplier_delivery_date needs order_date")
			}
			return store.SupplierDeliveryDate(orderDate, argInt(args, "quantity")), nil
		},
	}
}

func quoteHistoryTool(s *store.Store) agent.Tool {
	return agent.Tool{
		Name:        "search_quote_history",
		Description: "Find past quotes whose text mentions any of the search terms",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"search_terms": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
			"required": []string{"search_terms"},
		},
		Call: func(ctx context.Context, args map[string]interface{}) (string, error) {
			terms := argStrings(args, "search_terms")
			if len(terms) == 0 {
				return "", fmt.Errorf("search_quote_history needs search_terms")
			}
			matches, err := s.SearchQuoteHistory(ctx, terms, 5)
			if err != nil {
				return "", err
			}
			return encodeJSON(matches)
		},
	}
}

func generateQuoteTool(s *store.Store) agent.Tool {
	return agent.Tool{
		Name:        "generate_quote",
		Description: "Price the requested items at catalog prices with bulk discounts applied",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"items":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"quantities": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}},
				"quote_date": map[string]interface{}{"type": "string"},
			},
			"required": []string{"items", "quantities", "quote_date"},
		},
		Call: func(ctx context.Context, args map[string]interface{}) (string, error) {
			items := argStrings(args, "items")
			quantities := argInts(args, "quantities")
			quote, err := s.GenerateQuote(ctx, items, quantities, argString(args, "quote_date"))
			if err != nil {
				return "", err
			}
			return encodeJSON(quote)
		},
	}
}

func fulfillOrderTool(s *store.Store) agent.Tool {
	type receipt struct {
		Status        string `json:"status"`
		TransactionID string `json:"transaction_id"`
		Message       string `json:"message"`
	}
	return agent.Tool{
		Name:        "fulfill_order",
		Description: "Record a sales transaction for an approved order, deducting stock",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"item_name":        map[string]interface{}{"type": "string"},
				"quantity":         map[string]interface{}{"type": "integer"},
				"price_per_unit":   map[string]interface{}{"type": "number"},
				"transaction_date": map[string]interface{}{"type": "string"},
			},
			"required": []string{"item_name", "quantity", "price_per_unit", "transaction_date"},
		},
		Call: func(ctx context.Context, args map[string]interface{}) (string, error) {
			itemName := argString(args, "item_name")
			quantity := argInt(args, "quantity")
			date := argString(args, "transaction_date")
			if itemName == "" || date == "" {
				return "", fmt.Errorf("fulfill_order needs item_name and transaction_date")
			}

			available, err := s.StockLevel(ctx, itemName, date)
			if err != nil {
				return "", err
			}
			if available < quantity {
				return encodeJSON(receipt{
					Status:        "error",
					TransactionID: "N/A",
					Message:       fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", available, quantity),
				})
			}

			total := float64(quantity) * argFloat(args, "price_per_unit")
			id, err := s.CreateTransaction(ctx, itemName, model.TransactionSale, quantity, total, date)
			if err != nil {
				return encodeJSON(receipt{
					Status:        "error",
					TransactionID: "N/A",
					Message:       fmt.Sprintf("Fulfillment failed: %v", err),
				})
			}
			return encodeJSON(receipt{
				Status:        "success",
				TransactionID: fmt.Sprintf("%d", id),
				Message:       fmt.Sprintf("Order fulfillment completed. Transaction ID: %d", id),
			})
		},
	}
}

func encodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Argument coercion. Tool arguments arrive as decoded JSON, so numbers are
// float64 and lists are []interface{}; string items may also arrive as one
// comma-separated value.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func argStrings(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

func argInt(args map[string]interface{}, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func argInts(args map[string]interface{}, key string) []int64 {
	list, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		if f, ok := item.(float64); ok {
			out = append(out, int64(f))
		}
	}
	return out
}

func argFloat(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
