package app

import (
	"context"
	"fmt"

	"github.com/RoshanKumar487/profitlens/internal/ai"
	"github.com/RoshanKumar487/profitlens/internal/core"
	"github.com/shopspring/decimal"
)

// NoTenantMessage is returned by Chat when the caller has no associated
// company. The LLM collaborator is never invoked in that case, which
// prevents unscoped or cross-tenant tool execution.
const NoTenantMessage = "Sorry, I couldn't find a business associated with your account. Please finish setting up your business profile first."

type appService struct {
	employees core.EmployeeService
	invoices  core.InvoiceService
	expenses  core.ExpenseService
	revenue   core.RevenueService
	companies core.CompanyService
	users     core.UserService
	access    core.AccessRequestService
	quickRev  core.QuickRevenueService
	summaries core.SummaryService
	assistant *ai.Assistant
	registry  *ai.ToolRegistry
}

// Services groups the constructor dependencies of the application service.
type Services struct {
	Employees core.EmployeeService
	Invoices  core.InvoiceService
	Expenses  core.ExpenseService
	Revenue   core.RevenueService
	Companies core.CompanyService
	Users     core.UserService
	Access    core.AccessRequestService
	QuickRev  core.QuickRevenueService
	Summaries core.SummaryService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(deps Services, assistant *ai.Assistant) ApplicationService {
	s := &appService{
		employees: deps.Employees,
		invoices:  deps.Invoices,
		expenses:  deps.Expenses,
		revenue:   deps.Revenue,
		companies: deps.Companies,
		users:     deps.Users,
		access:    deps.Access,
		quickRev:  deps.QuickRev,
		summaries: deps.Summaries,
		assistant: assistant,
	}
	s.registry = s.buildToolRegistry()
	return s
}

func (s *appService) ResolveTenant(ctx context.Context, userID string) (string, error) {
	return s.users.CompanyForUser(ctx, userID)
}

func (s *appService) Chat(ctx context.Context, companyID string, history []ai.ChatMessage) (string, error) {
	if companyID == "" {
		return NoTenantMessage, nil
	}
	currency, err := s.Currency(ctx, companyID)
	if err != nil {
		return "", err
	}
	return s.assistant.Chat(ctx, history, s.registry, companyID, currency)
}

func (s *appService) GenerateFinancialSummary(ctx context.Context, companyID string) (*SummaryResult, error) {
	summary, err := s.summaries.Summarize(ctx, companyID)
	if err != nil {
		return nil, err
	}

	// The qualitative analysis runs only after both totals are known.
	revenue, _ := summary.TotalRevenue.Float64()
	expenses, _ := summary.TotalExpenses.Float64()
	analysis, err := s.assistant.AnalyzeOpportunities(ctx, revenue, expenses, "")
	if err != nil {
		return nil, fmt.Errorf("opportunity analysis: %w", err)
	}

	currency, err := s.Currency(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{Summary: summary, Analysis: analysis, Currency: currency}, nil
}

func (s *appService) AnalyzeOpportunities(ctx context.Context, totalRevenue, totalExpenses decimal.Decimal, additionalContext string) (*ai.OpportunityAnalysis, error) {
	revenue, _ := totalRevenue.Float64()
	expenses, _ := totalExpenses.Float64()
	return s.assistant.AnalyzeOpportunities(ctx, revenue, expenses, additionalContext)
}

func (s *appService) ExtractReceipt(ctx context.Context, companyID, createdBy, mimeType string, image []byte) (*ReceiptResult, error) {
	extracted, err := s.assistant.ExtractReceipt(ctx, mimeType, image)
	if err != nil {
		return nil, err
	}

	date, err := dateArg(map[string]any{"date": extracted.Date}, "date")
	if err != nil {
		return nil, fmt.Errorf("extracted receipt date: %w", err)
	}
	category := extracted.Category
	if !core.ValidExpenseCategory(category) {
		category = "Other"
	}

	id, err := s.expenses.Add(ctx, companyID, core.ExpenseInput{
		Date:        date,
		Amount:      decimal.NewFromFloat(extracted.Amount),
		Category:    category,
		Vendor:      extracted.Vendor,
		Description: extracted.Description,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{ExpenseID: id, Extracted: extracted}, nil
}

func (s *appService) ImportEmployees(ctx context.Context, companyID, createdBy, mimeType string, image []byte) (*ImportEmployeesResult, error) {
	extracted, err := s.assistant.ExtractEmployees(ctx, mimeType, image)
	if err != nil {
		return nil, err
	}

	result := &ImportEmployeesResult{Extracted: extracted.Employees}
	for _, e := range extracted.Employees {
		id, err := s.employees.Add(ctx, companyID, core.EmployeeInput{
			Name:        e.Name,
			Position:    e.Position,
			Salary:      decimal.NewFromFloat(e.Salary),
			Description: e.Description,
			CreatedBy:   createdBy,
		})
		if err != nil {
			return nil, fmt.Errorf("import employee %q: %w", e.Name, err)
		}
		result.EmployeeIDs = append(result.EmployeeIDs, id)
	}
	return result, nil
}

func (s *appService) Currency(ctx context.Context, companyID string) (string, error) {
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return "", err
	}
	return core.CurrencySymbol(company.Country), nil
}

func (s *appService) Employees() core.EmployeeService           { return s.employees }
func (s *appService) Invoices() core.InvoiceService             { return s.invoices }
func (s *appService) Expenses() core.ExpenseService             { return s.expenses }
func (s *appService) Revenue() core.RevenueService              { return s.revenue }
func (s *appService) Companies() core.CompanyService            { return s.companies }
func (s *appService) Users() core.UserService                   { return s.users }
func (s *appService) AccessRequests() core.AccessRequestService { return s.access }
func (s *appService) QuickRevenue() core.QuickRevenueService    { return s.quickRev }
