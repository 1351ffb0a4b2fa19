package core_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	testCompanyA = "test-company-a"
	testCompanyB = "test-company-b"
	testUserID   = "test-user"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed the test DB with two tenants so cross-tenant leakage
	// shows up immediately.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE invoice_items, invoices, employees, expenses, revenue_entries, access_requests, users, companies CASCADE;

		INSERT INTO companies (id, name, name_lower, country) VALUES
		('test-company-a', 'Alpha Traders', 'alpha traders', 'US'),
		('test-company-b', 'Beta Works', 'beta works', 'GB');

		INSERT INTO users (id, email, name, role, company_id) VALUES
		('test-user', 'owner@alpha.test', 'Alpha Owner', 'owner', 'test-company-a');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}
