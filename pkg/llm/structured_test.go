package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	type quoteLine struct {
		Item  string  `json:"item"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
	}
	type quote struct {
		TotalPrice      float64     `json:"total_price" description:"final quoted price"`
		Breakdown       []quoteLine `json:"itemized_breakdown"`
		DiscountApplied string      `json:"discount_applied"`
		Notes           string      `json:"notes,omitempty"`
		internal        string
	}
	_ = quote{internal: ""}

	schema, err := GenerateSchema(&quote{})
	require.NoError(t, err)
	require.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, props, "total_price")
	require.Contains(t, props, "itemized_breakdown")
	require.NotContains(t, props, "internal")

	total := props["total_price"].(map[string]interface{})
	require.Equal(t, "number", total["type"])
	require.Equal(t, "final quoted price", total["description"])

	breakdown := props["itemized_breakdown"].(map[string]interface{})
	require.Equal(t, "array", breakdown["type"])
	items := breakdown["items"].(map[string]interface{})
	require.Equal(t, "object", items["type"])

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	require.Contains(t, required, "total_price")
	require.NotContains(t, required, "notes")
}

func TestGenerateSchemaErrors(t *testing.T) {
	_, err := GenerateSchema(nil)
	require.Error(t, err)

	_, err = GenerateSchema("not a struct")
	require.Error(t, err)
}

func TestParseStructured(t *testing.T) {
	type receipt struct {
		Status        string `json:"status"`
		TransactionID string `json:"transaction_id"`
	}

	var r receipt
	err := ParseStructured(`{"status":"success","transaction_id":"1001"}`, &r)
	require.NoError(t, err)
	require.Equal(t, "success", r.Status)
	require.Equal(t, "1001", r.TransactionID)

	err = ParseStructured(`not json`, &r)
	require.Error(t, err)

	err = ParseStructured(`{}`, nil)
	require.Error(t, err)

	err = ParseStructured(`{}`, receipt{})
	require.Error(t, err)
}
