package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// FinancialSummary holds lifetime totals for a company.
// NetProfit is always TotalRevenue − TotalExpenses.
type FinancialSummary struct {
	CompanyID     string          `json:"company_id"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalPayroll  decimal.Decimal `json:"total_payroll"`
}

// SummaryService computes financial aggregates over the full lifetime of a
// company's records (no date filtering).
type SummaryService interface {
	// Summarize fetches the revenue and expense totals concurrently and
	// combines them once both are known.
	Summarize(ctx context.Context, companyID string) (*FinancialSummary, error)
}

type summaryService struct {
	pool *pgxpool.Pool
}

// NewSummaryService constructs a SummaryService backed by the document store.
func NewSummaryService(pool *pgxpool.Pool) SummaryService {
	return &summaryService{pool: pool}
}

func (s *summaryService) Summarize(ctx context.Context, companyID string) (*FinancialSummary, error) {
	var revenue, expenses, payroll decimal.Decimal

	// The two sums are independent reads issued concurrently; the combination
	// below happens only after both have completed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = s.sum(gctx, `SELECT COALESCE(SUM(amount), 0) FROM revenue_entries WHERE company_id = $1`, companyID)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.sum(gctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE company_id = $1`, companyID)
		if err != nil {
			return fmt.Errorf("sum expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	payroll, err := s.sum(ctx, `SELECT COALESCE(SUM(salary), 0) FROM employees WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("sum payroll: %w", err)
	}

	return &FinancialSummary{
		CompanyID:     companyID,
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetProfit:     revenue.Sub(expenses),
		TotalPayroll:  payroll,
	}, nil
}

func (s *summaryService) sum(ctx context.Context, query, companyID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, companyID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
