package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/shopspring/decimal"
)

func TestRevenueService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewRevenueService(pool)
	ctx := context.Background()

	id, err := svc.Add(ctx, testCompanyA, core.RevenueInput{
		Date:   time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(1500),
		Source: "Online store",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		entries, err := svc.List(ctx, testCompanyA)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(entries) != 1 || entries[0].ID != id {
			t.Fatalf("expected entry %s, got %+v", id, entries)
		}
	})

	t.Run("update", func(t *testing.T) {
		err := svc.Update(ctx, testCompanyA, id, core.RevenueInput{
			Date:   time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(1750),
			Source: "Online store",
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		entries, err := svc.List(ctx, testCompanyA)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !entries[0].Amount.Equal(decimal.NewFromInt(1750)) {
			t.Errorf("expected amount 1750, got %s", entries[0].Amount)
		}
	})

	t.Run("update wrong tenant", func(t *testing.T) {
		err := svc.Update(ctx, testCompanyB, id, core.RevenueInput{
			Date: time.Now(), Amount: decimal.NewFromInt(1), Source: "x",
		})
		if err == nil {
			t.Fatal("expected error updating another tenant's entry")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := svc.Delete(ctx, testCompanyB, id); err == nil {
			t.Fatal("expected error deleting another tenant's entry")
		}
		if err := svc.Delete(ctx, testCompanyA, id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := svc.Delete(ctx, testCompanyA, id); err == nil {
			t.Fatal("expected error deleting twice")
		}
	})
}

func TestRevenueService_AddValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewRevenueService(pool)
	ctx := context.Background()

	_, err := svc.Add(ctx, testCompanyA, core.RevenueInput{
		Date:   time.Now(),
		Amount: decimal.NewFromInt(-10),
		Source: "Sales",
	})
	if err == nil {
		t.Fatal("expected error for negative amount")
	}
}
