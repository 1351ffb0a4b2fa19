package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_LastMessageMustBeUser(t *testing.T) {
	a := NewAssistant("test-key")
	registry := NewToolRegistry()

	tests := []struct {
		name    string
		history []ChatMessage
	}{
		{"empty history", nil},
		{"assistant last", []ChatMessage{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No network call happens on this path, so the fake key is never used.
			reply, err := a.Chat(context.Background(), tt.history, registry, "company-1", "$")
			require.NoError(t, err)
			assert.Equal(t, ClarifyNoUserMessage, reply)
		})
	}
}

func TestDispatch_InjectsTenantScope(t *testing.T) {
	registry := NewToolRegistry()

	var seen map[string]any
	registry.Register(ToolDefinition{
		Name: "list_things",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"company_id": map[string]any{"type": "string"}},
		},
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			seen = params
			return `{"ok":true}`, nil
		},
	})

	t.Run("overrides model-proposed company_id", func(t *testing.T) {
		out := dispatch(context.Background(), registry, "company-real", "list_things",
			`{"company_id":"company-forged","q":"jo"}`)
		assert.Equal(t, `{"ok":true}`, out)
		require.NotNil(t, seen)
		assert.Equal(t, "company-real", seen["company_id"])
		assert.Equal(t, "jo", seen["q"])
	})

	t.Run("injects when absent", func(t *testing.T) {
		dispatch(context.Background(), registry, "company-real", "list_things", "")
		assert.Equal(t, "company-real", seen["company_id"])
	})

	t.Run("unknown tool", func(t *testing.T) {
		out := dispatch(context.Background(), registry, "company-real", "drop_tables", "{}")
		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		assert.Contains(t, payload["error"], "unknown tool")
	})

	t.Run("malformed arguments", func(t *testing.T) {
		out := dispatch(context.Background(), registry, "company-real", "list_things", "{not json")
		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		assert.Contains(t, payload["error"], "invalid tool arguments")
	})
}

func TestDispatch_HandlerErrorBecomesToolOutput(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(ToolDefinition{
		Name: "failing_tool",
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			return "", assert.AnError
		},
	})

	out := dispatch(context.Background(), registry, "company-1", "failing_tool", "{}")
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestToolRegistry_ToOpenAITools(t *testing.T) {
	registry := NewToolRegistry()
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"company_id": map[string]any{"type": "string"}},
		"required":   []string{"company_id"},
	}
	registry.Register(ToolDefinition{
		Name:        "list_employees",
		Description: "List all employees.",
		InputSchema: schema,
	})

	tools := registry.ToOpenAITools()
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfFunction)
	assert.Equal(t, "list_employees", tools[0].OfFunction.Name)
	assert.Equal(t, schema, map[string]any(tools[0].OfFunction.Parameters))
}
