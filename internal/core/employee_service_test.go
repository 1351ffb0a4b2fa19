package core_test

import (
	"context"
	"testing"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/shopspring/decimal"
)

func TestEmployeeService_AddAndList(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewEmployeeService(pool)
	ctx := context.Background()

	id, err := svc.Add(ctx, testCompanyA, core.EmployeeInput{
		Name:      "Jordan Lee",
		Position:  "Engineer",
		Salary:    decimal.NewFromInt(65000),
		CreatedBy: testUserID,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("Add returned empty id")
	}

	_, err = svc.Add(ctx, testCompanyA, core.EmployeeInput{
		Name:     "Sam Alvarez",
		Position: "Manager",
		Salary:   decimal.NewFromInt(72000),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	employees, err := svc.List(ctx, testCompanyA)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	// Newest first.
	if employees[0].Name != "Sam Alvarez" {
		t.Errorf("expected newest employee first, got %q", employees[0].Name)
	}
}

func TestEmployeeService_FindByName(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewEmployeeService(pool)
	ctx := context.Background()

	_, err := svc.Add(ctx, testCompanyA, core.EmployeeInput{
		Name:   "Jordan Lee",
		Salary: decimal.NewFromInt(65000),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("exact match", func(t *testing.T) {
		e, err := svc.FindByName(ctx, testCompanyA, "Jordan Lee")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if e == nil || e.Name != "Jordan Lee" {
			t.Fatalf("expected Jordan Lee, got %+v", e)
		}
	})

	t.Run("absent is nil not error", func(t *testing.T) {
		e, err := svc.FindByName(ctx, testCompanyA, "Nobody Here")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if e != nil {
			t.Fatalf("expected nil for absent employee, got %+v", e)
		}
	})

	t.Run("other tenant cannot see", func(t *testing.T) {
		e, err := svc.FindByName(ctx, testCompanyB, "Jordan Lee")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if e != nil {
			t.Fatal("employee visible across tenants")
		}
	})
}

func TestEmployeeService_SearchPrefix(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewEmployeeService(pool)
	ctx := context.Background()

	names := []string{"Joanna Park", "Jordan Lee", "Jonas Miller", "Sam Alvarez", "Maria Jones"}
	for _, name := range names {
		if _, err := svc.Add(ctx, testCompanyA, core.EmployeeInput{Name: name, Salary: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("Add %q failed: %v", name, err)
		}
	}

	got, err := svc.SearchPrefix(ctx, testCompanyA, "Jo")
	if err != nil {
		t.Fatalf("SearchPrefix failed: %v", err)
	}

	// Prefix matches only, ordered by lowercase name ascending. "Maria Jones"
	// contains but does not start with the term and must not appear.
	want := []string{"Joanna Park", "Jonas Miller", "Jordan Lee"}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("result[%d]: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestEmployeeService_SearchPrefixLimit(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewEmployeeService(pool)
	ctx := context.Background()

	for _, suffix := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		name := "Jo " + suffix
		if _, err := svc.Add(ctx, testCompanyA, core.EmployeeInput{Name: name, Salary: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("Add %q failed: %v", name, err)
		}
	}

	got, err := svc.SearchPrefix(ctx, testCompanyA, "jo")
	if err != nil {
		t.Fatalf("SearchPrefix failed: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected results capped at 10, got %d", len(got))
	}
}

func TestEmployeeService_Update(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewEmployeeService(pool)
	ctx := context.Background()

	id, err := svc.Add(ctx, testCompanyA, core.EmployeeInput{Name: "Jordan Lee", Salary: decimal.NewFromInt(65000)})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err = svc.Update(ctx, testCompanyA, id, core.EmployeeInput{
		Name:     "Jordan Lee-Smith",
		Position: "Lead Engineer",
		Salary:   decimal.NewFromInt(71000),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	e, err := svc.FindByName(ctx, testCompanyA, "Jordan Lee-Smith")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if e == nil {
		t.Fatal("updated employee not found by new name")
	}
	if !e.Salary.Equal(decimal.NewFromInt(71000)) {
		t.Errorf("expected salary 71000, got %s", e.Salary)
	}

	// The lowercase search field must track the rename.
	matches, err := svc.SearchPrefix(ctx, testCompanyA, "jordan lee-s")
	if err != nil {
		t.Fatalf("SearchPrefix failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after rename, got %d", len(matches))
	}

	t.Run("wrong tenant", func(t *testing.T) {
		err := svc.Update(ctx, testCompanyB, id, core.EmployeeInput{Name: "X", Salary: decimal.Zero})
		if err == nil {
			t.Fatal("expected error updating employee from another tenant")
		}
	})
}
