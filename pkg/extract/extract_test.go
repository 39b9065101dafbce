package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructured(t *testing.T) {
	t.Run("plain json object", func(t *testing.T) {
		payload, err := Structured(`{"status":"success","transaction_id":"1001"}`)
		require.NoError(t, err)
		require.Equal(t, "success", payload["status"])
		require.Equal(t, "1001", payload["transaction_id"])
	})

	t.Run("json embedded in prose", func(t *testing.T) {
		text := "Here is the result you asked for:\n{\"decision\": \"APPROVE\", \"reason\": \"fair price\"}\nLet me know if you need anything else."
		payload, err := Structured(text)
		require.NoError(t, err)
		require.Equal(t, "APPROVE", payload["decision"])
	})

	t.Run("greedy span covers nested objects", func(t *testing.T) {
		text := `report: {"items":{"A4":500,"Letter":120},"low_stock":[]}`
		payload, err := Structured(text)
		require.NoError(t, err)
		items, ok := payload["items"].(map[string]any)
		require.True(t, ok)
		require.EqualValues(t, 500, items["A4"])
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := Structured("")
		require.ErrorIs(t, err, ErrNoPayload)
	})

	t.Run("no braces", func(t *testing.T) {
		_, err := Structured("DECISION: APPROVE\nREASON: looks good")
		require.ErrorIs(t, err, ErrNoPayload)
	})

	t.Run("unmatched open brace", func(t *testing.T) {
		_, err := Structured("broken { payload without close")
		require.ErrorIs(t, err, ErrNoPayload)
	})

	t.Run("close brace before open brace", func(t *testing.T) {
		_, err := Structured("} nothing useful {")
		require.ErrorIs(t, err, ErrNoPayload)
	})

	t.Run("span is not valid json", func(t *testing.T) {
		_, err := Structured("prefix {not json at all} suffix")
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("span decodes to non-object", func(t *testing.T) {
		// A greedy span across two separate objects is invalid JSON.
		_, err := Structured(`{"a":1} and {"b":2}`)
		require.ErrorIs(t, err, ErrInvalidPayload)
	})
}
