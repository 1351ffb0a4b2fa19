// seed is a one-shot tool that loads a demo tenant for local development.
// It is idempotent: re-running refreshes the demo company in place.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"github.com/RoshanKumar487/profitlens/internal/db"

	"github.com/joho/godotenv"
)

const (
	demoCompanyID = "demo-company"
	demoOwnerID   = "demo-owner"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring demo company...")
	_, err = tx.Exec(ctx, `
		INSERT INTO companies (id, name, name_lower, country, address, registration_number, created_at, updated_at)
		VALUES ($1, 'Demo Coffee Roasters', 'demo coffee roasters', 'US', '42 Bean Street, Portland, OR', 'US-DEMO-001', NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		  SET name = EXCLUDED.name,
		      name_lower = EXCLUDED.name_lower,
		      country = EXCLUDED.country,
		      updated_at = NOW();
	`, demoCompanyID)
	if err != nil {
		log.Fatalf("Failed to restore company: %v", err)
	}

	log.Println("Restoring demo owner...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, name, role, company_id, created_at)
		VALUES ($1, 'owner@demo.test', 'Demo Owner', 'owner', $2, NOW())
		ON CONFLICT (id) DO UPDATE
		  SET company_id = EXCLUDED.company_id,
		      role = EXCLUDED.role;
	`, demoOwnerID, demoCompanyID)
	if err != nil {
		log.Fatalf("Failed to restore owner: %v", err)
	}

	log.Println("Clearing demo business data...")
	clears := []string{
		`DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE company_id = $1)`,
		`DELETE FROM invoices WHERE company_id = $1`,
		`DELETE FROM employees WHERE company_id = $1`,
		`DELETE FROM expenses WHERE company_id = $1`,
		`DELETE FROM revenue_entries WHERE company_id = $1`,
	}
	for _, stmt := range clears {
		if _, err := tx.Exec(ctx, stmt, demoCompanyID); err != nil {
			log.Fatalf("Failed to clear demo data: %v", err)
		}
	}

	log.Println("Seeding demo employees...")
	_, err = tx.Exec(ctx, `
		INSERT INTO employees (id, company_id, name, name_lower, position, salary, description, created_by, created_at, updated_at)
		VALUES
		  ('demo-emp-1', $1, 'Jordan Lee', 'jordan lee', 'Head Roaster', 62000, NULL, $2, NOW(), NOW()),
		  ('demo-emp-2', $1, 'Joanna Park', 'joanna park', 'Barista', 38000, NULL, $2, NOW(), NOW()),
		  ('demo-emp-3', $1, 'Sam Alvarez', 'sam alvarez', 'Shop Manager', 54000, NULL, $2, NOW(), NOW());
	`, demoCompanyID, demoOwnerID)
	if err != nil {
		log.Fatalf("Failed to seed employees: %v", err)
	}

	log.Println("Seeding demo expenses and revenue...")
	_, err = tx.Exec(ctx, `
		INSERT INTO expenses (id, company_id, expense_date, amount, category, vendor, description, created_by, created_at)
		VALUES
		  ('demo-exp-1', $1, CURRENT_DATE - 14, 1250.00, 'Rent', 'Bean Street Properties', 'Monthly rent', $2, NOW()),
		  ('demo-exp-2', $1, CURRENT_DATE - 7, 430.50, 'Utilities', 'City Power', NULL, $2, NOW())`,
		demoCompanyID, demoOwnerID)
	if err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO revenue_entries (id, company_id, entry_date, amount, source, description, created_by, created_at, updated_at)
		VALUES
		  ('demo-rev-1', $1, CURRENT_DATE - 10, 5200.00, 'Retail sales', NULL, $2, NOW(), NOW()),
		  ('demo-rev-2', $1, CURRENT_DATE - 3, 1875.25, 'Wholesale', 'Cafe partner order', $2, NOW(), NOW())`,
		demoCompanyID, demoOwnerID)
	if err != nil {
		log.Fatalf("Failed to seed revenue: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Demo tenant ready.")
}
