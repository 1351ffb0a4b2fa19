package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildToolRegistry(t *testing.T) {
	svc := &appService{}
	registry := svc.buildToolRegistry()

	want := []string{
		"list_employees",
		"add_employee",
		"find_employee_by_name",
		"list_invoices",
		"update_invoice_status",
		"list_expenses",
		"add_expense",
		"delete_most_recent_expense",
		"generate_financial_summary",
	}

	all := registry.All()
	require.Len(t, all, len(want))
	for _, name := range want {
		tool, ok := registry.Get(name)
		require.True(t, ok, "tool %s must be registered", name)

		// Every tool is tenant-scoped: company_id must be declared and required.
		props, ok := tool.InputSchema["properties"].(map[string]any)
		require.True(t, ok, "tool %s must declare properties", name)
		assert.Contains(t, props, "company_id")

		required, ok := tool.InputSchema["required"].([]string)
		require.True(t, ok, "tool %s must declare required fields", name)
		assert.Contains(t, required, "company_id")

		assert.Equal(t, false, tool.InputSchema["additionalProperties"])
		assert.NotNil(t, tool.Handler, "tool %s must have a handler", name)
	}
}

func TestDecimalArg(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		want    decimal.Decimal
		wantErr bool
	}{
		{"float64", map[string]any{"amount": 120.5}, decimal.NewFromFloat(120.5), false},
		{"string", map[string]any{"amount": "99.25"}, decimal.NewFromFloat(99.25), false},
		{"bad string", map[string]any{"amount": "a lot"}, decimal.Zero, true},
		{"missing", map[string]any{}, decimal.Zero, true},
		{"wrong type", map[string]any{"amount": true}, decimal.Zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decimalArg(tt.params, "amount")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestDateArg(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		got, err := dateArg(map[string]any{"date": "2026-08-01"}, "date")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("defaults to today", func(t *testing.T) {
		got, err := dateArg(map[string]any{}, "date")
		require.NoError(t, err)
		assert.Equal(t, time.Now().UTC().Truncate(24*time.Hour), got)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := dateArg(map[string]any{"date": "01/08/2026"}, "date")
		assert.Error(t, err)
	})
}

func TestStringArg(t *testing.T) {
	params := map[string]any{"name": "Jordan", "count": 3}
	assert.Equal(t, "Jordan", stringArg(params, "name"))
	assert.Equal(t, "", stringArg(params, "count"))
	assert.Equal(t, "", stringArg(params, "missing"))
}
