package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyInput holds the mutable profile fields of a company.
type CompanyInput struct {
	Name               string
	Country            string
	Address            string
	RegistrationNumber string
}

// CompanyService provides company profile operations and the public
// company-name prefix search.
type CompanyService interface {
	// Get returns the company by id.
	Get(ctx context.Context, companyID string) (*Company, error)

	// Create inserts a new company and returns its id.
	Create(ctx context.Context, input CompanyInput) (string, error)

	// UpdateProfile replaces the company's profile fields.
	UpdateProfile(ctx context.Context, companyID string, input CompanyInput) error

	// SearchPrefix returns up to 10 companies whose name starts with q,
	// ordered by name ascending. The match is against the stored name with
	// its original capitalization.
	SearchPrefix(ctx context.Context, q string) ([]Company, error)
}

type companyService struct {
	pool *pgxpool.Pool
}

// NewCompanyService constructs a CompanyService backed by the document store.
func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

const companyColumns = `id, name, name_lower, country, address, registration_number, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	c := &Company{}
	err := row.Scan(&c.ID, &c.Name, &c.NameLower, &c.Country,
		&c.Address, &c.RegistrationNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *companyService) Get(ctx context.Context, companyID string) (*Company, error) {
	c, err := scanCompany(s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+` FROM companies WHERE id = $1`,
		companyID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %s not found", companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", companyID, err)
	}
	return c, nil
}

func (s *companyService) Create(ctx context.Context, input CompanyInput) (string, error) {
	if input.Name == "" {
		return "", fmt.Errorf("company name is required")
	}
	country := input.Country
	if country == "" {
		country = "US"
	}

	id := uuid.NewString()
	var address, regNumber *string
	if input.Address != "" {
		address = &input.Address
	}
	if input.RegistrationNumber != "" {
		regNumber = &input.RegistrationNumber
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO companies (id, name, name_lower, country, address, registration_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		id, input.Name, strings.ToLower(input.Name), country, address, regNumber,
	)
	if err != nil {
		return "", fmt.Errorf("create company %q: %w", input.Name, err)
	}
	return id, nil
}

func (s *companyService) UpdateProfile(ctx context.Context, companyID string, input CompanyInput) error {
	var address, regNumber *string
	if input.Address != "" {
		address = &input.Address
	}
	if input.RegistrationNumber != "" {
		regNumber = &input.RegistrationNumber
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE companies
		SET name = $2, name_lower = $3, country = $4, address = $5, registration_number = $6, updated_at = NOW()
		WHERE id = $1`,
		companyID, input.Name, strings.ToLower(input.Name), input.Country, address, regNumber,
	)
	if err != nil {
		return fmt.Errorf("update company %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("company %s not found", companyID)
	}
	return nil
}

func (s *companyService) SearchPrefix(ctx context.Context, q string) ([]Company, error) {
	term := strings.TrimSpace(q)
	rows, err := s.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE name >= $1 AND name <= $2
		ORDER BY name ASC
		LIMIT $3`,
		term, term+prefixSentinel, prefixSearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
