package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/shopspring/decimal"
)

func testInvoiceInput(number string) core.InvoiceInput {
	return core.InvoiceInput{
		InvoiceNumber: number,
		ClientName:    "Acme Ltd",
		Items: []core.InvoiceItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(150)},
			{Description: "Support", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(99.50)},
		},
		Discount:   decimal.NewFromInt(100),
		Tax:        decimal.NewFromInt(80),
		IssuedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceService_CreateComputesTotals(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	id, err := svc.Create(ctx, testCompanyA, testInvoiceInput("INV-001"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inv, err := svc.Get(ctx, testCompanyA, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// subtotal = 10×150 + 2×99.50 = 1699, total = 1699 − 100 + 80 = 1679
	if !inv.Subtotal.Equal(decimal.NewFromInt(1699)) {
		t.Errorf("expected subtotal 1699, got %s", inv.Subtotal)
	}
	if !inv.Total.Equal(decimal.NewFromInt(1679)) {
		t.Errorf("expected total 1679, got %s", inv.Total)
	}
	if inv.Status != core.InvoiceStatusDraft {
		t.Errorf("expected default status Draft, got %s", inv.Status)
	}
	if len(inv.Items) != 2 {
		t.Errorf("expected 2 line items, got %d", len(inv.Items))
	}
}

func TestInvoiceService_CreateValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	t.Run("no items", func(t *testing.T) {
		input := testInvoiceInput("INV-BAD")
		input.Items = nil
		if _, err := svc.Create(ctx, testCompanyA, input); err == nil {
			t.Fatal("expected error for invoice without items")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		input := testInvoiceInput("INV-BAD")
		input.Status = "Cancelled"
		if _, err := svc.Create(ctx, testCompanyA, input); err == nil {
			t.Fatal("expected error for unknown status")
		}
	})

	t.Run("duplicate number within tenant", func(t *testing.T) {
		if _, err := svc.Create(ctx, testCompanyA, testInvoiceInput("INV-DUP")); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		if _, err := svc.Create(ctx, testCompanyA, testInvoiceInput("INV-DUP")); err == nil {
			t.Fatal("expected error for duplicate invoice number")
		}
		// The same number in another tenant is fine.
		if _, err := svc.Create(ctx, testCompanyB, testInvoiceInput("INV-DUP")); err != nil {
			t.Fatalf("create in other tenant failed: %v", err)
		}
	})
}

func TestInvoiceService_ListStatusFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	paid := testInvoiceInput("INV-PAID")
	paid.Status = core.InvoiceStatusPaid
	if _, err := svc.Create(ctx, testCompanyA, paid); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, testCompanyA, testInvoiceInput("INV-DRAFT")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := svc.List(ctx, testCompanyA, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(all))
	}

	onlyPaid, err := svc.List(ctx, testCompanyA, "Paid")
	if err != nil {
		t.Fatalf("List with filter failed: %v", err)
	}
	if len(onlyPaid) != 1 || onlyPaid[0].InvoiceNumber != "INV-PAID" {
		t.Fatalf("expected only INV-PAID, got %+v", onlyPaid)
	}

	if _, err := svc.List(ctx, testCompanyA, "NotAStatus"); err == nil {
		t.Fatal("expected error for invalid status filter")
	}
}

func TestInvoiceService_UpdateStatusByNumber(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	id, err := svc.Create(ctx, testCompanyA, testInvoiceInput("INV-100"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("existing invoice", func(t *testing.T) {
		updated, err := svc.UpdateStatusByNumber(ctx, testCompanyA, "INV-100", core.InvoiceStatusPaid)
		if err != nil {
			t.Fatalf("UpdateStatusByNumber failed: %v", err)
		}
		if !updated {
			t.Fatal("expected updated=true for existing invoice")
		}

		inv, err := svc.Get(ctx, testCompanyA, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if inv.Status != core.InvoiceStatusPaid {
			t.Errorf("expected status Paid, got %s", inv.Status)
		}
	})

	t.Run("unknown number reports false without writing", func(t *testing.T) {
		updated, err := svc.UpdateStatusByNumber(ctx, testCompanyA, "INV-999", core.InvoiceStatusOverdue)
		if err != nil {
			t.Fatalf("UpdateStatusByNumber failed: %v", err)
		}
		if updated {
			t.Fatal("expected updated=false for unknown invoice number")
		}
	})

	t.Run("wrong tenant reports false", func(t *testing.T) {
		updated, err := svc.UpdateStatusByNumber(ctx, testCompanyB, "INV-100", core.InvoiceStatusOverdue)
		if err != nil {
			t.Fatalf("UpdateStatusByNumber failed: %v", err)
		}
		if updated {
			t.Fatal("invoice updated across tenants")
		}

		inv, err := svc.Get(ctx, testCompanyA, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if inv.Status != core.InvoiceStatusPaid {
			t.Errorf("cross-tenant attempt changed status to %s", inv.Status)
		}
	})
}
