// Package extract pulls structured payloads out of free-form participant text.
//
// Participants are LLM-backed and give no schema guarantee: a response may be
// pure JSON, JSON wrapped in prose, or no JSON at all. Structured scans for the
// outermost brace-delimited span and decodes it. Absence of a payload and a
// payload that fails to decode are reported as distinct errors so callers can
// apply differentiated policy, though today every caller treats both the same
// way (fall back to the stage default).
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPayload indicates the text contains no brace-delimited span.
	ErrNoPayload = errors.New("extract: no structured payload found")
	// ErrInvalidPayload indicates a span was found but could not be decoded.
	ErrInvalidPayload = errors.New("extract: payload is not valid JSON")
)

// Structured returns the first greedy {...} span in text decoded as a JSON
// object. The span runs from the first '{' to the last '}' in the whole text,
// matching how the upstream prompts instruct participants to answer. Malformed
// input never panics or surfaces a decode error beyond ErrInvalidPayload.
func Structured(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	if start < 0 {
		return nil, ErrNoPayload
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return nil, ErrNoPayload
	}

	span := text[start : end+1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}
