package app

import (
	"context"

	"github.com/RoshanKumar487/profitlens/internal/ai"
	"github.com/RoshanKumar487/profitlens/internal/core"
	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface the HTTP adapter calls. It
// decouples presentation from business logic; implementations contain no
// display logic of any kind.
type ApplicationService interface {
	// ResolveTenant maps a verified user id to its company id. Returns empty
	// string (not an error) when the user has no associated company.
	ResolveTenant(ctx context.Context, userID string) (string, error)

	// Chat runs one assistant turn scoped to a tenant. When companyID is
	// empty a fixed apologetic message is returned and the LLM collaborator
	// is never invoked.
	Chat(ctx context.Context, companyID string, history []ai.ChatMessage) (string, error)

	// GenerateFinancialSummary computes lifetime totals (revenue and expense
	// sums fetched concurrently) and then requests the qualitative
	// opportunities analysis using those totals.
	GenerateFinancialSummary(ctx context.Context, companyID string) (*SummaryResult, error)

	// AnalyzeOpportunities runs the standalone expense-opportunity flow on
	// caller-supplied totals.
	AnalyzeOpportunities(ctx context.Context, totalRevenue, totalExpenses decimal.Decimal, additionalContext string) (*ai.OpportunityAnalysis, error)

	// ExtractReceipt converts a receipt image into a structured expense and
	// records it for the tenant. Returns the extraction plus the new id.
	ExtractReceipt(ctx context.Context, companyID, createdBy, mimeType string, image []byte) (*ReceiptResult, error)

	// ImportEmployees converts an employee-list document image into employee
	// records and persists them. Returns the extractions plus the new ids.
	ImportEmployees(ctx context.Context, companyID, createdBy, mimeType string, image []byte) (*ImportEmployeesResult, error)

	// Currency returns the tenant's presentation currency symbol.
	Currency(ctx context.Context, companyID string) (string, error)

	// Direct data access for the HTTP adapter.
	Employees() core.EmployeeService
	Invoices() core.InvoiceService
	Expenses() core.ExpenseService
	Revenue() core.RevenueService
	Companies() core.CompanyService
	Users() core.UserService
	AccessRequests() core.AccessRequestService
	QuickRevenue() core.QuickRevenueService
}

// SummaryResult is returned by GenerateFinancialSummary.
type SummaryResult struct {
	Summary  *core.FinancialSummary  `json:"summary"`
	Analysis *ai.OpportunityAnalysis `json:"analysis"`
	Currency string                  `json:"currency"`
}

// ReceiptResult is returned by ExtractReceipt.
type ReceiptResult struct {
	ExpenseID string               `json:"expense_id"`
	Extracted *ai.ExtractedExpense `json:"extracted"`
}

// ImportEmployeesResult is returned by ImportEmployees.
type ImportEmployeesResult struct {
	EmployeeIDs []string               `json:"employee_ids"`
	Extracted   []ai.ExtractedEmployee `json:"extracted"`
}
