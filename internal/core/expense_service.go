package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type expenseService struct {
	pool *pgxpool.Pool
}

// NewExpenseService constructs an ExpenseService backed by the document store.
func NewExpenseService(pool *pgxpool.Pool) ExpenseService {
	return &expenseService{pool: pool}
}

func (s *expenseService) List(ctx context.Context, companyID string) ([]Expense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, expense_date, amount, category, vendor, description, created_by, created_at
		FROM expenses
		WHERE company_id = $1
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Date, &e.Amount, &e.Category,
			&e.Vendor, &e.Description, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *expenseService) Add(ctx context.Context, companyID string, input ExpenseInput) (string, error) {
	if !input.Amount.IsPositive() {
		return "", fmt.Errorf("expense amount must be positive, got %s", input.Amount)
	}
	if !ValidExpenseCategory(input.Category) {
		return "", fmt.Errorf("invalid expense category %q", input.Category)
	}

	id := uuid.NewString()
	var vendor, description, createdBy *string
	if input.Vendor != "" {
		vendor = &input.Vendor
	}
	if input.Description != "" {
		description = &input.Description
	}
	if input.CreatedBy != "" {
		createdBy = &input.CreatedBy
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (id, company_id, expense_date, amount, category, vendor, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		id, companyID, input.Date, input.Amount, input.Category, vendor, description, createdBy,
	)
	if err != nil {
		return "", fmt.Errorf("add expense: %w", err)
	}
	return id, nil
}

func (s *expenseService) DeleteMostRecent(ctx context.Context, companyID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM expenses
		WHERE id = (
			SELECT id FROM expenses
			WHERE company_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`,
		companyID,
	)
	if err != nil {
		return false, fmt.Errorf("delete most recent expense: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
