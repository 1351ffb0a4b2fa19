package core_test

import (
	"context"
	"testing"

	"github.com/RoshanKumar487/profitlens/internal/core"
)

func createRequester(t *testing.T, users core.UserService) string {
	t.Helper()
	id, err := users.Create(context.Background(), "newbie@example.test", "New Member", "pending", "")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return id
}

func TestAccessRequestService_ApproveAssignsUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	access := core.NewAccessRequestService(pool)
	users := core.NewUserService(pool)
	ctx := context.Background()

	userID := createRequester(t, users)
	reqID, err := access.Create(ctx, testCompanyA, userID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pending, err := access.ListPending(ctx, testCompanyA)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != reqID {
		t.Fatalf("expected 1 pending request %s, got %+v", reqID, pending)
	}

	if err := access.Approve(ctx, testCompanyA, reqID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// Both sides of the approval must have landed together.
	u, err := users.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get user failed: %v", err)
	}
	if u.Role != "member" {
		t.Errorf("expected role member, got %q", u.Role)
	}
	if u.CompanyID == nil || *u.CompanyID != testCompanyA {
		t.Errorf("expected company %s, got %v", testCompanyA, u.CompanyID)
	}

	pending, err = access.ListPending(ctx, testCompanyA)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending requests after approval, got %d", len(pending))
	}

	t.Run("approving twice fails", func(t *testing.T) {
		if err := access.Approve(ctx, testCompanyA, reqID); err == nil {
			t.Fatal("expected error approving an already approved request")
		}
	})
}

func TestAccessRequestService_RejectLeavesUserUntouched(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	access := core.NewAccessRequestService(pool)
	users := core.NewUserService(pool)
	ctx := context.Background()

	userID := createRequester(t, users)
	reqID, err := access.Create(ctx, testCompanyA, userID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := access.Reject(ctx, testCompanyA, reqID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	u, err := users.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get user failed: %v", err)
	}
	if u.Role != "pending" || u.CompanyID != nil {
		t.Errorf("rejection mutated the user record: %+v", u)
	}

	t.Run("rejecting twice fails", func(t *testing.T) {
		if err := access.Reject(ctx, testCompanyA, reqID); err == nil {
			t.Fatal("expected error rejecting an already rejected request")
		}
	})
}

func TestAccessRequestService_TenantScoping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	access := core.NewAccessRequestService(pool)
	users := core.NewUserService(pool)
	ctx := context.Background()

	userID := createRequester(t, users)
	reqID, err := access.Create(ctx, testCompanyA, userID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another company's admin cannot approve a request that isn't theirs.
	if err := access.Approve(ctx, testCompanyB, reqID); err == nil {
		t.Fatal("expected error approving another tenant's request")
	}

	u, err := users.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get user failed: %v", err)
	}
	if u.CompanyID != nil {
		t.Errorf("failed approval still assigned the user: %v", *u.CompanyID)
	}
}
