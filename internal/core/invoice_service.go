package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by the document store.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

func (s *invoiceService) Create(ctx context.Context, companyID string, input InvoiceInput) (string, error) {
	if input.InvoiceNumber == "" {
		return "", fmt.Errorf("invoice number is required")
	}
	if len(input.Items) == 0 {
		return "", fmt.Errorf("invoice must have at least one line item")
	}
	status := input.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	if !ValidInvoiceStatus(string(status)) {
		return "", fmt.Errorf("invalid invoice status %q", status)
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	total := subtotal.Sub(input.Discount).Add(input.Tax)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.NewString()
	var clientEmail, clientAddress *string
	if input.ClientEmail != "" {
		clientEmail = &input.ClientEmail
	}
	if input.ClientAddress != "" {
		clientAddress = &input.ClientAddress
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (id, company_id, invoice_number, client_name, client_email, client_address,
		                      subtotal, discount, tax, total, status, issued_date, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())`,
		id, companyID, input.InvoiceNumber, input.ClientName, clientEmail, clientAddress,
		subtotal, input.Discount, input.Tax, total, string(status), input.IssuedDate, input.DueDate,
	)
	if err != nil {
		return "", fmt.Errorf("create invoice %q: %w", input.InvoiceNumber, err)
	}

	for _, item := range input.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			id, item.Description, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return "", fmt.Errorf("create invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit invoice: %w", err)
	}
	return id, nil
}

const invoiceColumns = `id, company_id, invoice_number, client_name, client_email, client_address,
	subtotal, discount, tax, total, status, issued_date, due_date, created_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	inv := &Invoice{}
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.InvoiceNumber, &inv.ClientName,
		&inv.ClientEmail, &inv.ClientAddress, &inv.Subtotal, &inv.Discount,
		&inv.Tax, &inv.Total, &inv.Status, &inv.IssuedDate, &inv.DueDate, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, companyID, status string) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		if !ValidInvoiceStatus(status) {
			return nil, fmt.Errorf("invalid invoice status %q", status)
		}
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := s.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *invoiceService) Get(ctx context.Context, companyID, invoiceID string) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND id = $2`,
		companyID, invoiceID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s not found", invoiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}

	items, err := s.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) UpdateStatusByNumber(ctx context.Context, companyID, invoiceNumber string, status InvoiceStatus) (bool, error) {
	if !ValidInvoiceStatus(string(status)) {
		return false, fmt.Errorf("invalid invoice status %q", status)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE invoices SET status = $3
		WHERE company_id = $1 AND invoice_number = $2`,
		companyID, invoiceNumber, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("update invoice %q status: %w", invoiceNumber, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *invoiceService) loadItems(ctx context.Context, invoiceID string) ([]InvoiceItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT description, quantity, unit_price
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()

	var items []InvoiceItem
	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
