package core_test

import (
	"context"
	"testing"

	"github.com/RoshanKumar487/profitlens/internal/core"
)

func TestCompanyService_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCompanyService(pool)
	ctx := context.Background()

	id, err := svc.Create(ctx, core.CompanyInput{
		Name:    "Gamma Logistics",
		Country: "IN",
		Address: "1 Harbour Road",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Name != "Gamma Logistics" || c.Country != "IN" {
		t.Errorf("unexpected company: %+v", c)
	}

	t.Run("country defaults", func(t *testing.T) {
		id, err := svc.Create(ctx, core.CompanyInput{Name: "No Country Co"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		c, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if c.Country != "US" {
			t.Errorf("expected default country US, got %q", c.Country)
		}
	})

	t.Run("name required", func(t *testing.T) {
		if _, err := svc.Create(ctx, core.CompanyInput{}); err == nil {
			t.Fatal("expected error for empty name")
		}
	})
}

func TestCompanyService_UpdateProfile(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCompanyService(pool)
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, testCompanyA, core.CompanyInput{
		Name:               "Alpha Traders International",
		Country:            "GB",
		RegistrationNumber: "GB-555",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	c, err := svc.Get(ctx, testCompanyA)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Name != "Alpha Traders International" || c.Country != "GB" {
		t.Errorf("profile not updated: %+v", c)
	}
	if c.RegistrationNumber == nil || *c.RegistrationNumber != "GB-555" {
		t.Errorf("registration number not updated: %v", c.RegistrationNumber)
	}

	t.Run("unknown company", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, "nope", core.CompanyInput{Name: "X"})
		if err == nil {
			t.Fatal("expected error for unknown company")
		}
	})
}

func TestCompanyService_SearchPrefix(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCompanyService(pool)
	ctx := context.Background()

	for _, name := range []string{"Acme East", "Acme West", "Zenith Corp"} {
		if _, err := svc.Create(ctx, core.CompanyInput{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	got, err := svc.SearchPrefix(ctx, "Acme")
	if err != nil {
		t.Fatalf("SearchPrefix failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Acme East" || got[1].Name != "Acme West" {
		t.Errorf("unexpected ordering: %q, %q", got[0].Name, got[1].Name)
	}
}
