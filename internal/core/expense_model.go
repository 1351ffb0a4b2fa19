package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a business cost record scoped to a company.
type Expense struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Vendor      *string         `json:"vendor,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   *string         `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseInput holds the fields required to record a new expense.
type ExpenseInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Vendor      string
	Description string
	CreatedBy   string
}

// ExpenseService provides tenant-scoped expense operations. Arbitrary
// deletion is not exposed; only the most recent expense can be removed.
type ExpenseService interface {
	// List returns all expenses for a company, newest first.
	List(ctx context.Context, companyID string) ([]Expense, error)

	// Add records an expense and returns its new id. Amount must be positive
	// and the category must be one of the fixed enumeration.
	Add(ctx context.Context, companyID string, input ExpenseInput) (string, error)

	// DeleteMostRecent removes the expense with the latest creation timestamp.
	// Returns false when the company has no expenses.
	DeleteMostRecent(ctx context.Context, companyID string) (bool, error)
}
