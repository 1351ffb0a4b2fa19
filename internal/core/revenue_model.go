package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueEntry is an income record scoped to a company. Revenue has a full
// CRUD surface via the direct API; the AI assistant does not mutate revenue.
type RevenueEntry struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   *string         `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RevenueInput holds the fields required to create or update a revenue entry.
type RevenueInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Source      string
	Description string
	CreatedBy   string
}

// RevenueService provides tenant-scoped revenue operations.
type RevenueService interface {
	// List returns all revenue entries for a company, newest first.
	List(ctx context.Context, companyID string) ([]RevenueEntry, error)

	// Add records a revenue entry and returns its new id.
	Add(ctx context.Context, companyID string, input RevenueInput) (string, error)

	// Update replaces the mutable fields of a revenue entry by id.
	Update(ctx context.Context, companyID, entryID string, input RevenueInput) error

	// Delete removes a revenue entry by id.
	Delete(ctx context.Context, companyID, entryID string) error
}
