package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Invoice is a billing document scoped to a company.
// Total = Subtotal - Discount + Tax, computed once at creation time; it is
// not re-derived when items mutate afterwards.
type Invoice struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ClientEmail   *string         `json:"client_email,omitempty"`
	ClientAddress *string         `json:"client_address,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	IssuedDate    time.Time       `json:"issued_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceInput holds the fields required to create a new invoice.
// Subtotal and Total are derived; callers supply Items, Discount and Tax.
type InvoiceInput struct {
	InvoiceNumber string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	Items         []InvoiceItem
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Status        InvoiceStatus
	IssuedDate    time.Time
	DueDate       *time.Time
}

// InvoiceService provides tenant-scoped invoice operations.
type InvoiceService interface {
	// Create inserts an invoice with its line items, computing
	// subtotal = Σ quantity × unit price and total = subtotal − discount + tax.
	Create(ctx context.Context, companyID string, input InvoiceInput) (string, error)

	// List returns invoices for a company, newest first. status filters to a
	// single status when non-empty.
	List(ctx context.Context, companyID, status string) ([]Invoice, error)

	// Get returns an invoice with its items by id.
	Get(ctx context.Context, companyID, invoiceID string) (*Invoice, error)

	// UpdateStatusByNumber sets the status of the invoice with the given
	// invoice number. Returns false (and performs no write) when no invoice
	// matches the number for that company.
	UpdateStatusByNumber(ctx context.Context, companyID, invoiceNumber string, status InvoiceStatus) (bool, error)
}
