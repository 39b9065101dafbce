package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"difflin-api/pkg/extract"
	"difflin-api/pkg/llm"
)

const defaultMaxTurns = 8

// Tool is a named operation the model may invoke during a run. Parameters
// is a JSON schema describing the expected arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Call        func(ctx context.Context, args map[string]interface{}) (string, error)
}

// Agent drives a tool-use conversation with an LLM. The model requests tools
// by replying with a JSON object {"tool": name, "arguments": {...}}; any
// reply without such an object is taken as the final answer.
type Agent struct {
	client   llm.LLMClient
	logger   llm.Logger
	name     string
	system   string
	model    string
	tools    map[string]Tool
	maxTurns int
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel overrides the client's default model for this agent.
func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

// WithMaxTurns bounds the number of model calls per run.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger llm.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New constructs an agent with the given system prompt and tools.
func New(client llm.LLMClient, name, system string, tools []Tool, opts ...Option) (*Agent, error) {
	if client == nil {
		return nil, errors.New("agent: client cannot be nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("agent: name cannot be empty")
	}

	a := &Agent{
		client:   client,
		name:     name,
		system:   system,
		tools:    make(map[string]Tool, len(tools)),
		maxTurns: defaultMaxTurns,
	}
	for _, tool := range tools {
		if tool.Name == "" || tool.Call == nil {
			return nil, fmt.Errorf("agent %s: tool needs a name and a call func", name)
		}
		if _, dup := a.tools[tool.Name]; dup {
			return nil, fmt.Errorf("agent %s: duplicate tool %q", name, tool.Name)
		}
		a.tools[tool.Name] = tool
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = llm.NewLogger("info")
	}
	return a, nil
}

// Run feeds input to the model and loops over tool invocations until the
// model produces a final answer or the turn budget runs out. On budget
// exhaustion the last model reply is returned as-is.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: a.systemPrompt()},
		{Role: "user", Content: input},
	}

	var lastReply string
	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.client.Chat(ctx, &llm.ChatRequest{
			Model:    a.model,
			Messages: messages,
		})
		if err != nil {
			return "", fmt.Errorf("agent %s: %w", a.name, err)
		}

		reply := resp.Text()
		lastReply = reply

		call, ok := parseToolCall(reply)
		if !ok {
			return reply, nil
		}

		tool, known := a.tools[call.Tool]
		observation := ""
		if !known {
			observation = fmt.Sprintf("Error: unknown tool %q. Available tools: %s", call.Tool, a.toolNames())
		} else {
			out, callErr := tool.Call(ctx, call.Arguments)
			if callErr != nil {
				observation = fmt.Sprintf("Error: %v", callErr)
			} else {
				observation = out
			}
		}

		a.logger.Debug(ctx, "agent tool call", llm.Fields{
			"agent": a.name,
			"tool":  call.Tool,
			"turn":  turn,
		})

		messages = append(messages,
			llm.Message{Role: "assistant", Content: reply},
			llm.Message{Role: "user", Content: fmt.Sprintf("Tool result for %s:\n%s", call.Tool, observation)},
		)
	}

	a.logger.Warn(ctx, "agent turn budget exhausted", llm.Fields{
		"agent":     a.name,
		"max_turns": a.maxTurns,
	})
	return lastReply, nil
}

type toolCall struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
}

// parseToolCall reports whether reply contains a tool invocation object.
func parseToolCall(reply string) (toolCall, bool) {
	payload, err := extract.Structured(reply)
	if err != nil {
		return toolCall{}, false
	}
	name, ok := payload["tool"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return toolCall{}, false
	}
	call := toolCall{Tool: name}
	if args, ok := payload["arguments"].(map[string]interface{}); ok {
		call.Arguments = args
	} else {
		call.Arguments = map[string]interface{}{}
	}
	return call, true
}

func (a *Agent) systemPrompt() string {
	if len(a.tools) == 0 {
		return a.system
	}

	var b strings.Builder
	b.WriteString(a.system)
	b.WriteString("\n\nYou can call the following tools. To call one, reply with only a JSON object:\n")
	b.WriteString(`{"tool": "<name>", "arguments": {...}}`)
	b.WriteString("\nThe tool result will be sent back to you. When you have everything you need, reply with your final answer instead of a tool call.\n\nTools:\n")
	for _, tool := range a.tools {
		b.WriteString(fmt.Sprintf("- %s: %s\n", tool.Name, tool.Description))
		if len(tool.Parameters) > 0 {
			if schema, err := json.Marshal(tool.Parameters); err == nil {
				b.WriteString(fmt.Sprintf("  arguments schema: %s\n", schema))
			}
		}
	}
	return b.String()
}

func (a *Agent) toolNames() string {
	names := make([]string, 0, len(a.tools))
	for name := range a.tools {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
