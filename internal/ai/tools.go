package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// ToolHandler is the execution function for a tool. It receives parsed JSON
// parameters (with the tenant id already injected by the orchestrator) and
// returns a JSON-encoded result string.
type ToolHandler func(ctx context.Context, params map[string]any) (string, error)

// ToolDefinition describes a single tool in the registry. Every input schema
// carries a required company_id field, but the value the model supplies for it
// is never trusted: the orchestrator overwrites it on every invocation.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any // JSON Schema for the tool's input parameters
	Handler     ToolHandler
}

// ToolRegistry holds the closed set of tools available to the assistant for
// one tenant-scoped chat turn.
type ToolRegistry struct {
	tools []ToolDefinition
}

// NewToolRegistry creates an empty ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(t ToolDefinition) {
	r.tools = append(r.tools, t)
}

// Get returns the ToolDefinition for a given tool name, and whether it was found.
func (r *ToolRegistry) Get(name string) (ToolDefinition, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDefinition{}, false
}

// All returns all registered tools.
func (r *ToolRegistry) All() []ToolDefinition {
	return r.tools
}

// ToOpenAITools converts the registry to the OpenAI Responses API tool format.
func (r *ToolRegistry) ToOpenAITools() []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.InputSchema,
			},
		})
	}
	return out
}
