// Package model defines the language-model completion collaborator consumed
// by the task runner. Providers stream Response chunks over a channel pair;
// the runner feeds each chunk through the classifier one at a time. The
// package also ships a scriptable mock for tests and examples.
package model

import (
	"context"
	"fmt"
)

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"` // JSON string of arguments
}

// ToolResult carries the outcome of a previously surfaced tool call back to
// the model.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Message is one conversational turn in a Request.
type Message struct {
	Role        string       `json:"role"` // system, user, assistant, tool
	Text        string       `json:"text,omitempty"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`   // assistant turns
	ToolResults []ToolResult `json:"tool_results,omitempty"` // tool turns
}

// Request captures the normalized model input produced by the runner.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []Message        `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
}

// Response is a (partial or final) chunk emitted by a streaming model.
type Response struct {
	Partial      bool       `json:"partial"`
	Text         string     `json:"text,omitempty"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"` // "stop", "tool_calls", etc.
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive completion generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// matches the text of the last message against registered scripts and replays
// the scripted responses in order.
type MockModel struct {
	info    Info
	scripts map[string][]Response
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:    Info{Name: name, Provider: "mock", SupportsTools: true},
		scripts: make(map[string][]Response),
	}
}

// AddScript registers a deterministic response sequence for an input prompt.
func (m *MockModel) AddScript(prompt string, responses ...Response) {
	m.scripts[prompt] = responses
}

// Generate implements Model; replays the script matching the last message.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}

		last := req.Messages[len(req.Messages)-1]
		prompt := last.Text
		if last.Role == "tool" && len(last.ToolResults) > 0 {
			prompt = last.ToolResults[len(last.ToolResults)-1].Content
		}
		script, ok := m.scripts[prompt]
		if !ok {
			script = []Response{{Text: fmt.Sprintf("Mock response to: %s", prompt), FinishReason: "stop"}}
		}

		for _, resp := range script {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case respCh <- resp:
			}
		}
	}()

	return respCh, errCh
}

// Info implements the Model interface.
func (m *MockModel) Info() Info { return m.info }
