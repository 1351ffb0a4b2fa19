package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type revenueService struct {
	pool *pgxpool.Pool
}

// NewRevenueService constructs a RevenueService backed by the document store.
func NewRevenueService(pool *pgxpool.Pool) RevenueService {
	return &revenueService{pool: pool}
}

func (s *revenueService) List(ctx context.Context, companyID string) ([]RevenueEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, entry_date, amount, source, description, created_by, created_at, updated_at
		FROM revenue_entries
		WHERE company_id = $1
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list revenue entries: %w", err)
	}
	defer rows.Close()

	var out []RevenueEntry
	for rows.Next() {
		var r RevenueEntry
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.Date, &r.Amount, &r.Source,
			&r.Description, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan revenue entry: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *revenueService) Add(ctx context.Context, companyID string, input RevenueInput) (string, error) {
	if !input.Amount.IsPositive() {
		return "", fmt.Errorf("revenue amount must be positive, got %s", input.Amount)
	}
	if input.Source == "" {
		return "", fmt.Errorf("revenue source is required")
	}

	id := uuid.NewString()
	var description, createdBy *string
	if input.Description != "" {
		description = &input.Description
	}
	if input.CreatedBy != "" {
		createdBy = &input.CreatedBy
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO revenue_entries (id, company_id, entry_date, amount, source, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
		id, companyID, input.Date, input.Amount, input.Source, description, createdBy,
	)
	if err != nil {
		return "", fmt.Errorf("add revenue entry: %w", err)
	}
	return id, nil
}

func (s *revenueService) Update(ctx context.Context, companyID, entryID string, input RevenueInput) error {
	if !input.Amount.IsPositive() {
		return fmt.Errorf("revenue amount must be positive, got %s", input.Amount)
	}

	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE revenue_entries
		SET entry_date = $3, amount = $4, source = $5, description = $6, updated_at = NOW()
		WHERE company_id = $1 AND id = $2`,
		companyID, entryID, input.Date, input.Amount, input.Source, description,
	)
	if err != nil {
		return fmt.Errorf("update revenue entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("revenue entry %s not found", entryID)
	}
	return nil
}

func (s *revenueService) Delete(ctx context.Context, companyID, entryID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM revenue_entries
		WHERE company_id = $1 AND id = $2`,
		companyID, entryID,
	)
	if err != nil {
		return fmt.Errorf("delete revenue entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("revenue entry %s not found", entryID)
	}
	return nil
}
