package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoshanKumar487/profitlens/internal/ai"
	"github.com/RoshanKumar487/profitlens/internal/core"
	"github.com/shopspring/decimal"
)

// buildToolRegistry declares the closed set of operations the assistant may
// invoke. Every schema requires company_id, but the value is overwritten by
// the orchestrator on each call; the model never controls tenant scope.
func (s *appService) buildToolRegistry() *ai.ToolRegistry {
	r := ai.NewToolRegistry()

	companyField := map[string]any{
		"type":        "string",
		"description": "The business id. Supplied by the system.",
	}

	r.Register(ai.ToolDefinition{
		Name:        "list_employees",
		Description: "List all employees of the business, newest first.",
		InputSchema: objectSchema(map[string]any{"company_id": companyField}, "company_id"),
		Handler:     s.toolListEmployees,
	})

	r.Register(ai.ToolDefinition{
		Name:        "add_employee",
		Description: "Add a new employee to the business.",
		InputSchema: objectSchema(map[string]any{
			"company_id":  companyField,
			"name":        map[string]any{"type": "string", "description": "Full name"},
			"position":    map[string]any{"type": "string", "description": "Job title"},
			"salary":      map[string]any{"type": "number", "description": "Annual salary as a plain number"},
			"description": map[string]any{"type": "string", "description": "Optional free-text notes"},
		}, "company_id", "name", "position", "salary"),
		Handler: s.toolAddEmployee,
	})

	r.Register(ai.ToolDefinition{
		Name:        "find_employee_by_name",
		Description: "Find one employee by their exact full name. A miss is a normal result, not an error.",
		InputSchema: objectSchema(map[string]any{
			"company_id": companyField,
			"name":       map[string]any{"type": "string", "description": "Exact full name"},
		}, "company_id", "name"),
		Handler: s.toolFindEmployee,
	})

	r.Register(ai.ToolDefinition{
		Name:        "list_invoices",
		Description: "List invoices of the business, newest first, optionally filtered by status.",
		InputSchema: objectSchema(map[string]any{
			"company_id": companyField,
			"status": map[string]any{
				"type":        "string",
				"description": "Optional status filter",
				"enum":        []string{"Draft", "Pending", "Paid", "Overdue"},
			},
		}, "company_id"),
		Handler: s.toolListInvoices,
	})

	r.Register(ai.ToolDefinition{
		Name:        "update_invoice_status",
		Description: "Set the status of an invoice identified by its invoice number. Ask the user to confirm before calling.",
		InputSchema: objectSchema(map[string]any{
			"company_id":     companyField,
			"invoice_number": map[string]any{"type": "string", "description": "The invoice number, e.g. INV-1042"},
			"status": map[string]any{
				"type": "string",
				"enum": []string{"Draft", "Pending", "Paid", "Overdue"},
			},
		}, "company_id", "invoice_number", "status"),
		Handler: s.toolUpdateInvoiceStatus,
	})

	r.Register(ai.ToolDefinition{
		Name:        "list_expenses",
		Description: "List all expenses of the business, newest first.",
		InputSchema: objectSchema(map[string]any{"company_id": companyField}, "company_id"),
		Handler:     s.toolListExpenses,
	})

	r.Register(ai.ToolDefinition{
		Name:        "add_expense",
		Description: "Record a new business expense.",
		InputSchema: objectSchema(map[string]any{
			"company_id": companyField,
			"date":       map[string]any{"type": "string", "description": "Expense date in YYYY-MM-DD format. Defaults to today."},
			"amount":     map[string]any{"type": "number", "description": "Amount as a plain positive number"},
			"category": map[string]any{
				"type": "string",
				"enum": core.ExpenseCategories,
			},
			"vendor":      map[string]any{"type": "string", "description": "Optional vendor name"},
			"description": map[string]any{"type": "string", "description": "Optional free-text description"},
		}, "company_id", "amount", "category"),
		Handler: s.toolAddExpense,
	})

	r.Register(ai.ToolDefinition{
		Name:        "delete_most_recent_expense",
		Description: "Delete the most recently recorded expense. Destructive: ask the user to confirm before calling.",
		InputSchema: objectSchema(map[string]any{"company_id": companyField}, "company_id"),
		Handler:     s.toolDeleteMostRecentExpense,
	})

	r.Register(ai.ToolDefinition{
		Name:        "generate_financial_summary",
		Description: "Compute lifetime revenue, expense and net profit totals for the business.",
		InputSchema: objectSchema(map[string]any{"company_id": companyField}, "company_id"),
		Handler:     s.toolFinancialSummary,
	})

	return r
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// ── Tool handlers ─────────────────────────────────────────────────────────────

func (s *appService) toolListEmployees(ctx context.Context, params map[string]any) (string, error) {
	employees, err := s.employees.List(ctx, stringArg(params, "company_id"))
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"employees": employees, "count": len(employees)})
}

func (s *appService) toolAddEmployee(ctx context.Context, params map[string]any) (string, error) {
	salary, err := decimalArg(params, "salary")
	if err != nil {
		return "", err
	}
	id, err := s.employees.Add(ctx, stringArg(params, "company_id"), core.EmployeeInput{
		Name:        stringArg(params, "name"),
		Position:    stringArg(params, "position"),
		Salary:      salary,
		Description: stringArg(params, "description"),
		CreatedBy:   "assistant",
	})
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"employee_id": id})
}

func (s *appService) toolFindEmployee(ctx context.Context, params map[string]any) (string, error) {
	emp, err := s.employees.FindByName(ctx, stringArg(params, "company_id"), stringArg(params, "name"))
	if err != nil {
		return "", err
	}
	if emp == nil {
		return marshalResult(map[string]any{"found": false})
	}
	return marshalResult(map[string]any{"found": true, "employee": emp})
}

func (s *appService) toolListInvoices(ctx context.Context, params map[string]any) (string, error) {
	invoices, err := s.invoices.List(ctx, stringArg(params, "company_id"), stringArg(params, "status"))
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"invoices": invoices, "count": len(invoices)})
}

func (s *appService) toolUpdateInvoiceStatus(ctx context.Context, params map[string]any) (string, error) {
	updated, err := s.invoices.UpdateStatusByNumber(ctx,
		stringArg(params, "company_id"),
		stringArg(params, "invoice_number"),
		core.InvoiceStatus(stringArg(params, "status")),
	)
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"updated": updated})
}

func (s *appService) toolListExpenses(ctx context.Context, params map[string]any) (string, error) {
	expenses, err := s.expenses.List(ctx, stringArg(params, "company_id"))
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"expenses": expenses, "count": len(expenses)})
}

func (s *appService) toolAddExpense(ctx context.Context, params map[string]any) (string, error) {
	amount, err := decimalArg(params, "amount")
	if err != nil {
		return "", err
	}
	date, err := dateArg(params, "date")
	if err != nil {
		return "", err
	}
	id, err := s.expenses.Add(ctx, stringArg(params, "company_id"), core.ExpenseInput{
		Date:        date,
		Amount:      amount,
		Category:    stringArg(params, "category"),
		Vendor:      stringArg(params, "vendor"),
		Description: stringArg(params, "description"),
		CreatedBy:   "assistant",
	})
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"expense_id": id})
}

func (s *appService) toolDeleteMostRecentExpense(ctx context.Context, params map[string]any) (string, error) {
	deleted, err := s.expenses.DeleteMostRecent(ctx, stringArg(params, "company_id"))
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{"deleted": deleted})
}

func (s *appService) toolFinancialSummary(ctx context.Context, params map[string]any) (string, error) {
	summary, err := s.summaries.Summarize(ctx, stringArg(params, "company_id"))
	if err != nil {
		return "", err
	}
	return marshalResult(summary)
}

// ── Argument helpers ──────────────────────────────────────────────────────────

func stringArg(params map[string]any, key string) string {
	v, _ := params[key].(string)
	return v
}

func decimalArg(params map[string]any, key string) (decimal.Decimal, error) {
	switch v := params[key].(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("argument %q is not a number: %w", key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("argument %q is missing or not a number", key)
	}
}

func dateArg(params map[string]any, key string) (time.Time, error) {
	raw := stringArg(params, key)
	if raw == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("argument %q must be a YYYY-MM-DD date: %w", key, err)
	}
	return d, nil
}

func marshalResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}
