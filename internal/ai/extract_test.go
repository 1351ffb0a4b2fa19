package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	schema, err := generateSchema(&ExtractedExpense{})
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema must have a properties object")
	for _, field := range []string{"date", "amount", "category", "vendor", "description"} {
		assert.Contains(t, props, field)
	}
}

func TestGenerateSchema_NestedList(t *testing.T) {
	schema, err := generateSchema(&ExtractedEmployeeList{})
	require.NoError(t, err)

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	employees, ok := props["employees"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", employees["type"])
}
