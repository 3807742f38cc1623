// Package tool implements the tool-invocation surface exposed to agents:
// structured capabilities with schema validated arguments, consistent error
// handling and metadata for model guidance. The meeting-booking tool lives
// here as the one built-in capability.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/a2acal/internal/util"
)

// Tool defines a callable capability an agent may invoke during a task.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description provided to the model
	// so it understands when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with arguments already parsed from JSON and
	// validated against the tool's schema.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Registry maps tool names to implementations. It replaces string
// comparison sprinkled through call sites with a single closed lookup step.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry over the given tools. Later registrations
// with the same name win.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Name()] = t
	}
	return r
}

// Register adds or replaces a tool.
func (r *Registry) Register(t Tool) { r.tools[t.Name()] = t }

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools in unspecified order.
func (r *Registry) All() []Tool {
	all := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		all = append(all, t)
	}
	return all
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
